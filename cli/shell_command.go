package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/golang/glog"
	"github.com/krancour/memberadmin"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	sshTerminal "golang.org/x/crypto/ssh/terminal"
)

var shellCommand = cli.Command{
	Name:  "shell",
	Usage: "Manage members interactively",
	Flags: []cli.Flag{
		cliFlagRefresh,
		cliFlagYes,
	},
	Action: shell,
}

const shellHelp = `Commands:
  search [QUERY]        Show members matching QUERY; no QUERY clears the search
  page N                Go to page N
  first | prev | next | last
                        Go to the first, previous, next, or last page
  select-all            Toggle the select-all box
  edit ID               Edit the member with id ID
  set name|email VALUE  Change a field of the member being edited
  save                  Save the member being edited
  cancel                Discard changes to the member being edited
  delete ID             Delete the member with id ID
  show                  Redraw the table
  help                  Show this help
  quit | exit           Leave the shell`

type shellCommandName string

const (
	shellCmdNone      shellCommandName = ""
	shellCmdSearch    shellCommandName = "search"
	shellCmdPage      shellCommandName = "page"
	shellCmdFirst     shellCommandName = "first"
	shellCmdPrevious  shellCommandName = "prev"
	shellCmdNext      shellCommandName = "next"
	shellCmdLast      shellCommandName = "last"
	shellCmdSelectAll shellCommandName = "select-all"
	shellCmdEdit      shellCommandName = "edit"
	shellCmdSet       shellCommandName = "set"
	shellCmdSave      shellCommandName = "save"
	shellCmdCancel    shellCommandName = "cancel"
	shellCmdDelete    shellCommandName = "delete"
	shellCmdShow      shellCommandName = "show"
	shellCmdHelp      shellCommandName = "help"
	shellCmdQuit      shellCommandName = "quit"
)

// parsedShellCommand is one line of shell input.
type parsedShellCommand struct {
	name   shellCommandName
	query  string
	number int
	field  memberadmin.Field
	value  string
}

func parseShellCommand(line string) (parsedShellCommand, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return parsedShellCommand{}, nil
	}
	word := line
	var rest string
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		word = line[:i]
		rest = strings.TrimSpace(line[i+1:])
	}
	cmd := parsedShellCommand{
		name: shellCommandName(strings.ToLower(word)),
	}
	switch cmd.name {
	case "previous":
		cmd.name = shellCmdPrevious
	case "exit":
		cmd.name = shellCmdQuit
	}
	switch cmd.name {
	case shellCmdSearch:
		cmd.query = rest
	case shellCmdPage, shellCmdEdit, shellCmdDelete:
		if rest == "" {
			return cmd, errors.Errorf("usage: %s N", cmd.name)
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return cmd, errors.Errorf("%q is not an integer", rest)
		}
		cmd.number = n
	case shellCmdSet:
		parts := strings.SplitN(rest, " ", 2)
		if len(parts) < 2 {
			return cmd, errors.New("usage: set name|email VALUE")
		}
		field, err := memberadmin.ParseField(parts[0])
		if err != nil {
			return cmd, err
		}
		cmd.field = field
		cmd.value = strings.TrimSpace(parts[1])
	case shellCmdFirst, shellCmdPrevious, shellCmdNext, shellCmdLast,
		shellCmdSelectAll, shellCmdSave, shellCmdCancel, shellCmdShow,
		shellCmdHelp, shellCmdQuit:
		if rest != "" {
			return cmd, errors.Errorf("%s takes no arguments", cmd.name)
		}
	default:
		return cmd, errors.Errorf("unknown command %q; try help", word)
	}
	return cmd, nil
}

// confirmFunc asks the user to confirm a destructive action.
type confirmFunc func(message string) (bool, error)

// executeShellCommand applies cmd to the session and redraws the view. The
// bool it returns indicates whether the shell should exit.
func executeShellCommand(
	session tableSession,
	cmd parsedShellCommand,
	out io.Writer,
	confirm confirmFunc,
) (bool, error) {
	var view memberadmin.TableView
	var err error
	switch cmd.name {
	case shellCmdNone:
		return false, nil
	case shellCmdQuit:
		return true, nil
	case shellCmdHelp:
		fmt.Fprintln(out, shellHelp)
		return false, nil
	case shellCmdShow:
		view, err = session.Show()
	case shellCmdSearch:
		view, err = session.Search(cmd.query)
	case shellCmdPage:
		if view, err = session.SetPage(cmd.number); err == nil &&
			view.CurrentPage != cmd.number {
			fmt.Fprintf(
				out,
				"Page %d does not exist; there are %d page(s).\n",
				cmd.number,
				view.TotalPages,
			)
		}
	case shellCmdFirst:
		view, err = session.FirstPage()
	case shellCmdPrevious:
		view, err = session.PreviousPage()
	case shellCmdNext:
		view, err = session.NextPage()
	case shellCmdLast:
		view, err = session.LastPage()
	case shellCmdSelectAll:
		view, err = session.ToggleSelectAll()
	case shellCmdEdit:
		view, err = session.BeginEdit(cmd.number)
	case shellCmdSet:
		view, err = session.EditField(cmd.field, cmd.value)
	case shellCmdSave:
		view, err = session.SaveEdit()
	case shellCmdCancel:
		view, err = session.CancelEdit()
	case shellCmdDelete:
		var ok bool
		if ok, err = confirm(
			fmt.Sprintf("Delete member %d? This cannot be undone.", cmd.number),
		); err != nil || !ok {
			return false, err
		}
		view, err = session.DeleteMember(cmd.number)
	default:
		return false, errors.Errorf("unknown command %q", cmd.name)
	}
	if err != nil {
		return false, err
	}
	return false, renderView(out, view, "table")
}

func shell(c *cli.Context) error {
	if !sshTerminal.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New(
			"the shell requires an interactive terminal; use `memberadmin list` " +
				"instead",
		)
	}

	ctx := context.Background()
	session, err := getSession(ctx, c)
	if err != nil {
		return err
	}
	defer closeSession(session, glog.Warningf)

	if loadErr := session.LoadError(); loadErr != "" {
		fmt.Printf("Warning: %s\n\n", loadErr)
	}
	fmt.Println(`Type "help" for a list of commands.`)
	fmt.Println()

	confirm := func(message string) (bool, error) {
		if c.Bool(flagYes) {
			return true, nil
		}
		return confirmed(message)
	}

	if _, err := executeShellCommand(
		session,
		parsedShellCommand{name: shellCmdShow},
		os.Stdout,
		confirm,
	); err != nil {
		return err
	}

	for {
		var line string
		fmt.Println()
		if err := survey.AskOne(
			&survey.Input{Message: "memberadmin>"},
			&line,
		); err != nil {
			if err == terminal.InterruptErr || err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "error reading command")
		}
		fmt.Println()
		cmd, err := parseShellCommand(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		quit, err := executeShellCommand(session, cmd, os.Stdout, confirm)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func confirmed(message string) (bool, error) {
	var confirmed bool
	if err := survey.AskOne(
		&survey.Confirm{
			Message: message,
		},
		&confirmed,
	); err != nil {
		return false, errors.Wrap(err, "error confirming action")
	}
	return confirmed, nil
}
