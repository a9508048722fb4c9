// Command roster manages the attendee roster from the command line: import a
// CSV (local file or URL), export the roster or the combined guest list, and
// reset check-in state between rehearsals.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/lukegvoigt/vnr-checkin/config"
	rosteradapter "github.com/lukegvoigt/vnr-checkin/internal/adapters/roster"
	"github.com/lukegvoigt/vnr-checkin/internal/database"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
	"github.com/lukegvoigt/vnr-checkin/internal/repository/postgres"
	"github.com/lukegvoigt/vnr-checkin/internal/services"
)

const usage = `Usage:
  roster import <file.csv | https://...>   import or re-import the attendee roster
  roster export-attendees [out.csv]        export the roster (defaults to stdout)
  roster export-guests [out.csv]           export attendees plus sponsor guests
  roster reset-checkins                    set every attendee back to not checked in
  roster migrate [up|down]                 apply or roll back schema migrations
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger("roster")

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "connect to database: %v\n", err)
		os.Exit(1)
	}

	svc := services.NewRosterService(
		postgres.NewAttendeeRepository(db),
		postgres.NewTicketRepository(db),
		rosteradapter.NewHTTPFetcher(http.DefaultClient),
		logger,
		cfg.Year,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, args, cfg, db, logger, svc); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, cfg *config.Config, db *sql.DB, logger *slog.Logger, svc domain.RosterService) error {
	switch args[0] {
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("import needs a file path or URL")
		}
		return runImport(ctx, svc, args[1])
	case "export-attendees":
		return runExport(ctx, args[1:], svc.ExportAttendees)
	case "export-guests":
		return runExport(ctx, args[1:], svc.ExportGuests)
	case "reset-checkins":
		n, err := svc.ResetCheckIns(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("reset %d check-ins\n", n)
		return nil
	case "migrate":
		return runMigrate(args[1:], cfg, db, logger)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

func runImport(ctx context.Context, svc domain.RosterService, source string) error {
	var (
		result *domain.RosterImportResult
		err    error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		result, err = svc.ImportURL(ctx, source)
	} else {
		f, oerr := os.Open(source)
		if oerr != nil {
			return oerr
		}
		defer f.Close()
		result, err = svc.Import(ctx, f)
	}
	if err != nil {
		return err
	}
	fmt.Printf("imported roster: %d created, %d updated, %d skipped\n",
		result.Created, result.Updated, result.Skipped)
	return nil
}

func runExport(ctx context.Context, args []string, export func(context.Context, io.Writer) (int, error)) error {
	out := os.Stdout
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	n, err := export(ctx, out)
	if err != nil {
		return err
	}
	if out != os.Stdout {
		fmt.Printf("wrote %d rows to %s\n", n, out.Name())
	}
	return nil
}

func runMigrate(args []string, cfg *config.Config, db *sql.DB, logger *slog.Logger) error {
	runner := database.NewRunner(db, logger, database.MigrateOptions{MigrationsDir: cfg.MigrationsDir})
	defer runner.Close()
	if len(args) > 0 && args[0] == "down" {
		return runner.Down()
	}
	return runner.Up()
}
