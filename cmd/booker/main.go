// Command booker is a terminal client for the booking API.
//
//	booker login --username alice --password secret
//	booker seats 42
//	booker book --showtime 42 --seats 7,8 --refreshment 3:2
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"cinema-ticket/internal/client/admin"
	"cinema-ticket/internal/client/api"
	"cinema-ticket/internal/client/booking"
	"cinema-ticket/internal/client/session"
	"cinema-ticket/internal/client/ui"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/pkg/utils"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = `usage: booker [flags] <command> [args]

commands:
  login                       log in with --username and --password
  logout                      forget the stored token
  whoami                      show the current user
  movies                      list movies (--page, --per-page)
  showtimes <movieID>         list upcoming showtimes of a movie
  seats <showtimeID>          print the seat grid
  book                        book --seats for --showtime (--refreshment id:qty)
  bookings                    list my bookings
  admin <resource> list       list movies|cinemas|rooms|showtimes|users|bookings
  admin <resource> delete <id>
  admin bookings confirm|cancel <id>
`

type app struct {
	client   *api.Client
	sessions *session.Manager
	console  *ui.Console
	log      *zap.Logger
}

func main() {
	flags := pflag.NewFlagSet("booker", pflag.ExitOnError)
	flags.String("api-url", "http://localhost:8080", "booking API base URL")
	flags.String("data-dir", defaultDataDir(), "directory for the persisted token")
	flags.Duration("timeout", api.DefaultTimeout, "request timeout")
	flags.Bool("debug", false, "verbose logging")
	flags.String("username", "", "login username or email")
	flags.String("password", "", "login password")
	flags.Int64("showtime", 0, "showtime id for book")
	flags.Int64Slice("seats", nil, "seat ids for book")
	flags.StringSlice("refreshment", nil, "refreshment as id:qty, repeatable")
	flags.Int("page", 1, "page number")
	flags.Int("per-page", 10, "page size")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	v.SetEnvPrefix("BOOKER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(v.GetBool("debug"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, v, flags.Args(), logger); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger keeps stdout for command output: only warnings reach stderr
// unless --debug is set.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return utils.InitLogger("", "booker", true)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".booker"
	}
	return filepath.Join(home, ".booker")
}

func run(ctx context.Context, v *viper.Viper, args []string, logger *zap.Logger) error {
	store, err := session.OpenBadgerStore(v.GetString("data-dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := api.NewClient(api.Config{
		BaseURL: v.GetString("api-url"),
		Timeout: v.GetDuration("timeout"),
	}, logger)
	if err != nil {
		return err
	}

	console := ui.NewConsole(os.Stdout)
	sessions := session.NewManager(client, store, nil, console, logger)
	client.SetTokenSource(sessions)
	client.OnUnauthorized(sessions.HandleUnauthorized)
	sessions.OnIdentityChange(func() { client.InvalidateQueries("") })
	sessions.Restore(ctx)

	a := &app{client: client, sessions: sessions, console: console, log: logger}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		return a.login(ctx, v.GetString("username"), v.GetString("password"))
	case "logout":
		sessions.Logout()
		console.Success("Logged out")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "movies":
		return a.movies(ctx, v.GetInt("page"), v.GetInt("per-page"))
	case "showtimes":
		id, err := argID(rest, "movieID")
		if err != nil {
			return err
		}
		return a.showtimes(ctx, id)
	case "seats":
		id, err := argID(rest, "showtimeID")
		if err != nil {
			return err
		}
		return a.seats(ctx, id)
	case "book":
		lines, err := parseRefreshments(v.GetStringSlice("refreshment"))
		if err != nil {
			return err
		}
		seats, err := flagsInt64Slice(v, "seats")
		if err != nil {
			return err
		}
		return a.book(ctx, v.GetInt64("showtime"), seats, lines)
	case "bookings":
		return a.bookings(ctx, v.GetInt("page"), v.GetInt("per-page"))
	case "admin":
		return a.admin(ctx, rest, v.GetInt("page"), v.GetInt("per-page"))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func argID(args []string, name string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := utils.ParseID(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}

// flagsInt64Slice reads an int64 list that may come from the flag or from
// a comma separated BOOKER_SEATS value.
func flagsInt64Slice(v *viper.Viper, key string) ([]int64, error) {
	var ids []int64
	for _, raw := range v.GetStringSlice(key) {
		for _, part := range strings.Split(strings.Trim(raw, "[]"), ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a number", key, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseRefreshments(values []string) ([]booking.RefreshmentLine, error) {
	var lines []booking.RefreshmentLine
	for _, val := range values {
		idPart, qtyPart, ok := strings.Cut(val, ":")
		if !ok {
			return nil, fmt.Errorf("refreshment %q: want id:qty", val)
		}
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("refreshment %q: bad id", val)
		}
		qty, err := strconv.Atoi(qtyPart)
		if err != nil {
			return nil, fmt.Errorf("refreshment %q: bad quantity", val)
		}
		lines = append(lines, booking.RefreshmentLine{ID: id, Quantity: qty})
	}
	return lines, nil
}

func (a *app) requireLogin() error {
	if a.sessions.State() != session.StateLoggedIn {
		return errors.New("not logged in, run: booker login --username <name> --password <password>")
	}
	return nil
}

func (a *app) login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("--username and --password are required")
	}

	user, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		msg := api.ErrorMessage(err, "Login failed")
		a.console.Error(msg)
		return err
	}
	a.console.Success("Welcome, " + user.Username)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	user, err := a.sessions.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d\t%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, user.Role, user.Status)
	return nil
}

func (a *app) movies(ctx context.Context, page, perPage int) error {
	list, err := a.client.Movies(ctx, page, perPage)
	if err != nil {
		return err
	}
	for _, m := range list.Items {
		fmt.Printf("%d\t%s\t%dmin\t%s\n", m.ID, m.Title, m.DurationMinutes, m.Status)
	}
	fmt.Printf("page %d/%d, %d total\n", list.Pagination.Page, list.Pagination.TotalPages, list.Pagination.Total)
	return nil
}

func (a *app) showtimes(ctx context.Context, movieID int64) error {
	list, err := a.client.ShowtimesByMovie(ctx, movieID)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Printf("%d\troom %d\t%s\t%.2f\n", s.ID, s.RoomID, s.StartTime.Local().Format(time.DateTime), s.Price)
	}
	return nil
}

func (a *app) seats(ctx context.Context, showtimeID int64) error {
	grid, err := booking.NewReconciler(a.client, a.log).Load(ctx, showtimeID)
	if err != nil {
		return err
	}
	printGrid(grid, nil)
	return nil
}

func printGrid(grid *booking.SeatGrid, d *booking.Draft) {
	if grid.Len() == 0 {
		fmt.Println("(no seats)")
		return
	}
	for _, row := range grid.Rows {
		var b strings.Builder
		fmt.Fprintf(&b, "%-3s", row.Label)
		for _, s := range row.Seats {
			switch grid.StateOf(s.ID, d) {
			case booking.SeatBooked:
				b.WriteString(" [xx]")
			case booking.SeatSelected:
				b.WriteString(" [**]")
			default:
				fmt.Fprintf(&b, " [%2d]", s.Col)
			}
		}
		fmt.Println(b.String())
	}
	fmt.Println("[xx] booked  [**] selected")
}

// book drives the wizard end to end from a deep link into seat selection.
func (a *app) book(ctx context.Context, showtimeID int64, seatIDs []int64, lines []booking.RefreshmentLine) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	w := booking.NewWizard(showtimeID)
	if w.Step() != booking.StepChooseSeats {
		return errors.New("--showtime is required")
	}

	grid, err := booking.NewReconciler(a.client, a.log).Load(ctx, showtimeID)
	w.SetSeatGrid(grid, err)
	if err != nil {
		return err
	}

	for _, id := range seatIDs {
		selected, err := w.ToggleSeat(id)
		if err != nil {
			return fmt.Errorf("seat %d: %w", id, err)
		}
		if !selected {
			a.console.Error(fmt.Sprintf("Seat %d is not available", id))
		}
	}
	if err := w.ContinueFromSeats(); err != nil {
		return err
	}

	if len(lines) == 0 {
		if err := w.SkipRefreshments(); err != nil {
			return err
		}
	} else {
		for _, l := range lines {
			if err := w.SetRefreshment(l.ID, l.Quantity); err != nil {
				return err
			}
		}
		if err := w.ContinueFromRefreshments(); err != nil {
			return err
		}
	}

	printGrid(w.Grid(), w.Draft())

	submitter := booking.NewSubmitter(a.client, a.console, a.console, a.log)
	created, err := w.Submit(ctx, submitter)
	if err != nil {
		return err
	}
	printBooking(created)
	return nil
}

func (a *app) bookings(ctx context.Context, page, perPage int) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	list, err := a.client.MyBookings(ctx, page, perPage)
	if err != nil {
		return err
	}
	for i := range list.Items {
		printBooking(&list.Items[i])
	}
	return nil
}

func printBooking(b *response.BookingResponse) {
	seats := make([]string, 0, len(b.Tickets))
	for _, t := range b.Tickets {
		seats = append(seats, t.SeatLabel)
	}
	fmt.Printf("%d\t%s\t%s\t%.2f\t%s\n", b.ID, b.BookingCode, b.Status, b.TotalPrice, strings.Join(seats, ","))
}

func (a *app) admin(ctx context.Context, args []string, page, perPage int) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: booker admin <resource> list|delete|confirm|cancel [id]")
	}

	resource, verb := args[0], args[1]
	switch resource {
	case "movies":
		return adminRun(ctx, admin.NewResource[response.MovieResponse](a.client, admin.Movies, a.console, a.log), verb, args[2:], page, perPage)
	case "cinemas":
		return adminRun(ctx, admin.NewResource[response.CinemaResponse](a.client, admin.Cinemas, a.console, a.log), verb, args[2:], page, perPage)
	case "rooms":
		return adminRun(ctx, admin.NewResource[response.RoomResponse](a.client, admin.Rooms, a.console, a.log), verb, args[2:], page, perPage)
	case "showtimes":
		return adminRun(ctx, admin.NewResource[response.ShowtimeResponse](a.client, admin.Showtimes, a.console, a.log), verb, args[2:], page, perPage)
	case "users":
		return adminRun(ctx, admin.NewResource[response.UserResponse](a.client, admin.Users, a.console, a.log), verb, args[2:], page, perPage)
	case "bookings":
		return adminRun(ctx, admin.NewResource[response.BookingResponse](a.client, admin.Bookings, a.console, a.log), verb, args[2:], page, perPage)
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}
}

func adminRun[T any](ctx context.Context, r *admin.Resource[T], verb string, args []string, page, perPage int) error {
	if verb == "list" {
		list, err := r.List(ctx, page, perPage)
		if err != nil {
			return err
		}
		for _, item := range list.Items {
			fmt.Printf("%+v\n", item)
		}
		return nil
	}

	id, err := argID(args, "id")
	if err != nil {
		return err
	}
	if verb == "delete" {
		return r.Delete(ctx, id)
	}
	_, err = r.Action(ctx, id, verb)
	return err
}
