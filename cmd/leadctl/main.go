// leadctl is the operator tool for the leads API: it lists, watches and
// approves leads, and can run the public submit-and-wait flow from a shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
	"github.com/phbpx/leadgate"
	"github.com/phbpx/leadgate/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `commands:
  list              print every lead, newest first
  watch             reprint the lead list every poll interval
  approve <id>      approve a lead
  revoke <id>       move a lead back to pending
  submit <email>    register an email and wait until it is approved`

type config struct {
	conf.Version
	Args         conf.Args
	URL          string        `conf:"default:http://localhost:3000"`
	AdminToken   string        `conf:"mask"`
	PollInterval time.Duration `conf:"default:5s"`
	ElapsedTick  time.Duration `conf:"default:1s"`
	DownloadURL  string        `conf:"default:https://play.google.com/store/apps/details?id=com.capadocia.ondetemeventorio"`
}

func main() {
	log, err := newLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Errorw("leadctl", "error", err)
			log.Sync()
			os.Exit(1)
		}
	}
}

func run(log *zap.SugaredLogger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg := config{
		Version: conf.Version{
			Build: "develop",
			Desc:  usage,
		},
	}

	help, err := conf.Parse("LEADCTL", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.URL)
	c.AdminToken = cfg.AdminToken

	return dispatch(ctx, c, cfg, log, os.Stdout)
}

func dispatch(ctx context.Context, c *client.Client, cfg config, log *zap.SugaredLogger, w io.Writer) error {
	switch cfg.Args.Num(0) {
	case "list":
		leads, err := c.List(ctx)
		if err != nil {
			return err
		}
		return printLeads(w, leads)

	case "watch":
		return c.Watch(ctx, cfg.PollInterval, func(leads []leadgate.Lead, err error) {
			if err != nil {
				log.Warnw("watch", "error", err.Error())
				return
			}
			fmt.Fprintf(w, "--- %s\n", time.Now().Format(time.RFC3339))
			printLeads(w, leads)
		})

	case "approve", "revoke":
		id := cfg.Args.Num(1)
		if id == "" {
			return fmt.Errorf("%s: lead id required", cfg.Args.Num(0))
		}
		lead, err := c.SetApproved(ctx, id, cfg.Args.Num(0) == "approve")
		if err != nil {
			return err
		}
		return printLeads(w, []leadgate.Lead{lead})

	case "submit":
		email := cfg.Args.Num(1)
		intake := client.Intake{
			Client:       c,
			DownloadURL:  cfg.DownloadURL,
			PollInterval: cfg.PollInterval,
			Log:          log,
		}
		sub, err := intake.Submit(ctx, email)
		if err != nil {
			return err
		}
		if sub.Approved {
			fmt.Fprintln(w, cfg.DownloadURL)
			return nil
		}

		fmt.Fprintf(w, "lead %s registered, waiting for approval\n", sub.LeadID)
		start := time.Now()
		stop := showElapsed(w, start, cfg.ElapsedTick)
		link, err := intake.AwaitApproval(ctx, sub.LeadID)
		stop()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "approved after %s: %s\n", time.Since(start).Round(time.Second), link)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", cfg.Args.Num(0), usage)
	}
}

// showElapsed prints the time spent waiting on every tick until the returned
// func is called. Nothing is written to w after stop returns.
func showElapsed(w io.Writer, start time.Time, tick time.Duration) (stop func()) {
	if tick <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				fmt.Fprintf(w, "waiting %s\n", now.Sub(start).Round(tick))
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func printLeads(w io.Writer, leads []leadgate.Lead) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tCREATED\tSTATUS")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Email, l.CreatedAt.Local().Format("2006-01-02 15:04:05"), l.Status())
	}
	return tw.Flush()
}

func newLog() (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
