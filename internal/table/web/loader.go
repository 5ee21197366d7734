package web

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/internal/retries"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultURL is the address of the reference member source. It serves a
// static JSON array of members.
const DefaultURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json" // nolint: lll

// LoaderConfig encapsulates configuration for a loader that retrieves members
// over HTTP(S).
type LoaderConfig struct {
	// URL is the address of a JSON array of members.
	URL string
	// AllowInsecure permits connections to servers presenting certificates that
	// cannot be verified.
	AllowInsecure bool
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// MaxAttempts bounds the number of attempts made before giving up.
	MaxAttempts uint8
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration
	// Logf receives a message for every member that is skipped. If nil, glog is
	// used.
	Logf table.LogFunc
}

// NewLoaderConfigWithDefaults returns a LoaderConfig with default values
// already applied.
func NewLoaderConfigWithDefaults() LoaderConfig {
	return LoaderConfig{
		URL:         DefaultURL,
		Timeout:     10 * time.Second,
		MaxAttempts: 3,
		MaxBackoff:  5 * time.Second,
	}
}

type loader struct {
	config     LoaderConfig
	httpClient *http.Client
	schema     *gojsonschema.Schema
}

// NewLoader returns a table.Loader that retrieves members from a URL. Failed
// attempts are retried with backoff when the failure looks transient.
func NewLoader(config LoaderConfig) (table.Loader, error) {
	if config.URL == "" {
		return nil, errors.New("a URL is required to load members over HTTP")
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 1
	}
	if config.Logf == nil {
		config.Logf = glog.Errorf
	}
	schema, err := gojsonschema.NewSchema(
		gojsonschema.NewStringLoader(memberSchema),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error compiling member schema")
	}
	return &loader{
		config: config,
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: config.AllowInsecure, // nolint: gosec
				},
			},
		},
		schema: schema,
	}, nil
}

func (l *loader) Load(ctx context.Context) ([]memberadmin.Member, error) {
	var body []byte
	if err := retries.ManageRetries(
		ctx,
		fmt.Sprintf("load members from %s", l.config.URL),
		l.config.MaxAttempts,
		l.config.MaxBackoff,
		func() (bool, error) {
			var retry bool
			var err error
			body, retry, err = l.fetch(ctx)
			return retry, err
		},
	); err != nil {
		return nil, memberadmin.NewErrLoad(l.config.URL, err.Error())
	}
	return l.parse(body)
}

// fetch makes a single attempt at retrieving the raw response body. The bool
// it returns indicates whether a failed attempt is worth retrying.
func (l *loader) fetch(ctx context.Context) ([]byte, bool, error) {
	attemptCtx := ctx
	if l.config.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, l.config.Timeout)
		defer cancel()
	}
	req, err := http.NewRequest(http.MethodGet, l.config.URL, nil)
	if err != nil {
		return nil, false, errors.Wrapf(err, "error creating request for %s", l.config.URL)
	}
	req = req.WithContext(attemptCtx)
	req.Header.Set("Accept", "application/json")
	resp, err := l.httpClient.Do(req)
	if err != nil {
		// Don't bother retrying if the caller has given up
		return nil, ctx.Err() == nil, errors.Wrap(err, "error invoking member source")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode >= http.StatusInternalServerError ||
			resp.StatusCode == http.StatusTooManyRequests
		return nil, retry, errors.Errorf(
			"received %d from member source",
			resp.StatusCode,
		)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, ctx.Err() == nil, errors.Wrap(err, "error reading response body")
	}
	return body, false, nil
}

// parse decodes a JSON array of members. Elements that do not conform to the
// member schema are logged and skipped rather than failing the whole load.
func (l *loader) parse(body []byte) ([]memberadmin.Member, error) {
	rawMembers := []json.RawMessage{}
	if err := json.Unmarshal(body, &rawMembers); err != nil {
		return nil, memberadmin.NewErrLoad(
			l.config.URL,
			fmt.Sprintf("response body is not a JSON array: %s", err),
		)
	}
	members := make([]memberadmin.Member, 0, len(rawMembers))
	for i, rawMember := range rawMembers {
		result, err := l.schema.Validate(gojsonschema.NewBytesLoader(rawMember))
		if err != nil {
			l.config.Logf("skipping element %d from %s: %s", i, l.config.URL, err)
			continue
		}
		if !result.Valid() {
			verrStrs := make([]string, len(result.Errors()))
			for j, verr := range result.Errors() {
				verrStrs[j] = verr.String()
			}
			l.config.Logf(
				"skipping element %d from %s: %s",
				i,
				l.config.URL,
				strings.Join(verrStrs, "; "),
			)
			continue
		}
		member := memberadmin.Member{}
		if err := json.Unmarshal(rawMember, &member); err != nil {
			l.config.Logf("skipping element %d from %s: %s", i, l.config.URL, err)
			continue
		}
		members = append(members, member)
	}
	return members, nil
}
