// Command adminctl is the terminal front end to the Payam admin API: it
// signs in against a running server, keeps the session token on disk, and
// drives the submission review workflow.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/internal/review"
	"github.com/payam/backend/internal/session"
	"github.com/payam/backend/pkg/apiclient"
)

var (
	apiBase   string
	tokenFile string

	listStatus string
	listSort   string
	listOrder  string
	listSearch string
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Payam admin console",
	Long: `adminctl drives the Payam contact-submission review workflow from
the terminal. Sign in once with "adminctl login"; the session is kept in a
local token file and restored on every later invocation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and drop the persisted session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contact submissions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Toggle a submission between pending and reviewed",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "http://localhost:8080", "base URL of the Payam API")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "session token file (default: user config dir)")

	listCmd.Flags().StringVar(&listStatus, "status", "all", "filter by status: all, pending or reviewed")
	listCmd.Flags().StringVar(&listSort, "sort", "created_at", "sort field: created_at, name or subject")
	listCmd.Flags().StringVar(&listOrder, "order", "desc", "sort order: asc or desc")
	listCmd.Flags().StringVar(&listSearch, "search", "", "match against name, email or subject")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, listCmd, reviewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newGate wires the API client and token store into a session gate. The
// gate starts unresolved; callers decide whether to restore the persisted
// session before acting.
func newGate() (*session.Gate, apiclient.Client, error) {
	path := tokenFile
	if path == "" {
		var err error
		path, err = session.DefaultTokenPath()
		if err != nil {
			return nil, nil, fmt.Errorf("locate token file: %w", err)
		}
	}
	client := apiclient.NewClient(strings.TrimRight(apiBase, "/"))
	gate := session.New(client, session.NewFileTokenStore(path))
	return gate, client, nil
}

// requireAdmin restores the persisted session and refuses to continue
// unless it belongs to an admin.
func requireAdmin(ctx context.Context, gate *session.Gate) error {
	gate.Resolve(ctx)
	if gate.Allowed() {
		return nil
	}
	if gate.State() == session.AuthenticatedNonAdmin {
		return errors.New("signed in, but this account is not an admin")
	}
	return errors.New("not signed in; run \"adminctl login <email>\" first")
}

func runLogin(cmd *cobra.Command, args []string) error {
	gate, _, err := newGate()
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	ctx := cmd.Context()
	if err := gate.SignIn(ctx, args[0], password); err != nil {
		if errors.Is(err, apiclient.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}

	p := gate.Profile()
	fmt.Printf("signed in as %s (%s)\n", p.FullName, p.Email)
	if !gate.IsAdmin() {
		fmt.Println("note: this account is not an admin; review commands will be refused")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	gate, _, err := newGate()
	if err != nil {
		return err
	}
	gate.Resolve(cmd.Context())
	gate.SignOut(cmd.Context())
	fmt.Println("signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	gate, _, err := newGate()
	if err != nil {
		return err
	}
	state := gate.Resolve(cmd.Context())
	if p := gate.Profile(); p != nil {
		fmt.Printf("%s (%s) [%s]\n", p.FullName, p.Email, state)
		return nil
	}
	fmt.Println("not signed in")
	return nil
}

// listOptions validates the list flags into fetch options.
func listOptions() (model.SubmissionListOptions, error) {
	opts := model.SubmissionListOptions{
		SortBy:       model.SortBy(listSort),
		SortOrder:    model.SortOrder(listOrder),
		StatusFilter: model.StatusFilter(listStatus),
	}
	if !opts.SortBy.Valid() {
		return opts, fmt.Errorf("invalid --sort %q", listSort)
	}
	if !opts.SortOrder.Valid() {
		return opts, fmt.Errorf("invalid --order %q", listOrder)
	}
	if !opts.StatusFilter.Valid() {
		return opts, fmt.Errorf("invalid --status %q", listStatus)
	}
	return opts, nil
}

func runList(cmd *cobra.Command, args []string) error {
	gate, client, err := newGate()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx, gate); err != nil {
		return err
	}

	opts, err := listOptions()
	if err != nil {
		return err
	}

	engine := review.New(apiclient.Bind(client, gate.Token))
	if err := engine.Fetch(ctx, opts); err != nil {
		return fmt.Errorf("fetch submissions: %w", err)
	}

	subs := engine.Search(listSearch)
	if len(subs) == 0 {
		fmt.Println("no submissions")
		return nil
	}
	printSubmissions(subs)
	return nil
}

func runReview(cmd *cobra.Command, args []string) error {
	gate, client, err := newGate()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx, gate); err != nil {
		return err
	}

	engine := review.New(apiclient.Bind(client, gate.Token))
	if err := engine.Fetch(ctx, model.SubmissionListOptions{}); err != nil {
		return fmt.Errorf("fetch submissions: %w", err)
	}

	status, err := engine.Toggle(ctx, args[0])
	if err != nil {
		if errors.Is(err, review.ErrUnknownSubmission) || errors.Is(err, apiclient.ErrNotFound) {
			return fmt.Errorf("no submission with id %s", args[0])
		}
		return err
	}
	fmt.Printf("%s -> %s\n", args[0], status)
	return nil
}

func printSubmissions(subs []model.Submission) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tNAME\tEMAIL\tSUBJECT\tCREATED\tREVIEWED")
	for _, s := range subs {
		reviewed := ""
		if s.ReviewedAt != nil {
			reviewed = s.ReviewedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Status, s.Name, s.Email, s.Subject,
			s.CreatedAt.Local().Format(time.DateTime), reviewed)
	}
	w.Flush()
}
