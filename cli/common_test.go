package main

import (
	"context"
	"fmt"

	"github.com/krancour/memberadmin"
)

type fakeLoader struct {
	members []memberadmin.Member
	err     error
}

func (f *fakeLoader) Load(context.Context) ([]memberadmin.Member, error) {
	return f.members, f.err
}

func testMembers(count int) []memberadmin.Member {
	members := make([]memberadmin.Member, count)
	for i := range members {
		id := i + 1
		role := memberadmin.RoleMember
		if id%5 == 0 {
			role = memberadmin.RoleAdmin
		}
		members[i] = memberadmin.Member{
			ID:    id,
			Name:  fmt.Sprintf("Member %d", id),
			Email: fmt.Sprintf("member%d@mailinator.com", id),
			Role:  role,
		}
	}
	return members
}

func newTestLocalSession(count int) tableSession {
	return newLocalSession(
		context.Background(),
		&fakeLoader{members: testMembers(count)},
		func(string, ...interface{}) {},
	)
}

func alwaysConfirm(string) (bool, error) {
	return true, nil
}

func neverConfirm(string) (bool, error) {
	return false, nil
}
