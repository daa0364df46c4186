package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/types"
)

var (
	browseView   string
	browseParent string
)

const browseCommands = `  show                          print the current page
  next | prev                   change page
  filter <field> <op> <value>   add a filter
  unfilter <label>              remove filters by label, e.g. "Status equals open"
  fields | operators            list filterable fields or operators
  values <field>                list the picklist values of a field
  select <row>...               select rows of the current page by number
  select none                   clear the selection
  delete                        delete the selected records
  edit <row> | remove <row>     row actions on the current page
  refresh                       reload the records
  quit
`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a view interactively",
	Long: "Browse opens a view and reads commands from standard input:\n\n" + browseCommands + `
Example:
  golistview browse --view account_contacts --parent 001A000001`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseView, "view", "v", "",
		"View name from configuration file (required)")
	browseCmd.MarkFlagRequired("view")
	browseCmd.Flags().StringVarP(&browseParent, "parent", "p", "",
		"Parent record id (defaults to the view's record_id)")

	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	s, err := openSession(ctx, cmd, sessionOptions{View: browseView, ParentID: browseParent})
	if err != nil {
		return err
	}
	defer s.Close()

	s.ctrl.Load(ctx)
	if err := s.renderer.Page(s.ctrl); err != nil {
		return err
	}

	for ctx.Err() == nil {
		line, readErr := s.terminal.Prompt("> ")
		if line != "" {
			quit, err := s.dispatch(ctx, line)
			if err != nil {
				cmd.PrintErrln(err)
			}
			if quit {
				return nil
			}
		}
		if errors.Is(readErr, io.EOF) {
			cmd.Println()
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
	return nil
}

// dispatch runs one browse command. The page is reprinted after every
// command that changes it.
func (s *session) dispatch(ctx context.Context, line string) (quit bool, err error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "quit", "exit", "q":
		return true, nil
	case "show", "ls":
	case "next", "n":
		s.ctrl.NextPage()
	case "prev", "p":
		s.ctrl.PreviousPage()
	case "refresh":
		s.ctrl.Refresh(ctx)
	case "filter":
		if err := s.applyFilters([]string{rest}); err != nil {
			return false, err
		}
	case "unfilter":
		if s.ctrl.RemoveFilter(rest) == 0 {
			return false, fmt.Errorf("no filter labelled %q", rest)
		}
	case "fields":
		return false, s.renderer.Options("Filter fields", s.ctrl.FieldOptions())
	case "operators":
		return false, s.renderer.Options("Operators", listview.Operators())
	case "values":
		opts := s.ctrl.SelectFilterField(rest)
		if opts == nil {
			return false, fmt.Errorf("%q is not a picklist field", rest)
		}
		return false, s.renderer.Options("Values of "+rest, opts)
	case "select":
		if strings.EqualFold(rest, "none") {
			s.ctrl.SetSelection(nil)
			break
		}
		rows, err := s.pageRows(strings.Fields(rest))
		if err != nil {
			return false, err
		}
		s.ctrl.SelectRows(rows)
	case "delete":
		if err := s.ctrl.BulkDeleteRequested(ctx); err != nil && !errors.Is(err, listview.ErrNoSelection) {
			return false, err
		}
	case "edit", "remove":
		rows, err := s.pageRows([]string{rest})
		if err != nil {
			return false, err
		}
		action := listview.ActionEdit
		if strings.EqualFold(verb, "remove") {
			action = listview.ActionDelete
		}
		s.ctrl.RowActionRequested(ctx, action, rows[0])
		if action == listview.ActionEdit {
			return false, nil
		}
	case "help", "?":
		_, err := fmt.Fprint(s.out, browseCommands)
		return false, err
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}

	return false, s.renderer.Page(s.ctrl)
}

// pageRows resolves 1-based row numbers on the current page.
func (s *session) pageRows(numbers []string) ([]types.Record, error) {
	page := s.ctrl.PaginatedRecords()
	if len(numbers) == 0 || (len(numbers) == 1 && numbers[0] == "") {
		return nil, fmt.Errorf("row number required")
	}
	rows := make([]types.Record, 0, len(numbers))
	for _, n := range numbers {
		i, err := strconv.Atoi(n)
		if err != nil || i < 1 || i > len(page) {
			return nil, fmt.Errorf("row %q is not on this page (1-%d)", n, len(page))
		}
		rows = append(rows, page[i-1])
	}
	return rows, nil
}
