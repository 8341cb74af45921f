package main

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qkit-edu/qkit/internal/auth"
	"github.com/qkit-edu/qkit/internal/config"
	qlog "github.com/qkit-edu/qkit/internal/log"
	"github.com/qkit-edu/qkit/internal/router"
	"github.com/qkit-edu/qkit/internal/storage"
	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/internal/tui"
	"github.com/qkit-edu/qkit/pkg/client"
)

// app holds the global flags and the wiring shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer

	configFile string
	apiURL     string
	logLevel   string
	jsonOutput bool

	cfg     *config.Config
	log     zerolog.Logger
	logFile io.Closer
	storage *storage.FileStore
	client  *client.Client
	auth    *auth.Store
	stores  *store.Stores
	router  *router.Router
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "qkit [path]",
		Short: "Terminal client for QKIT E-Learning",
		Long: `qkit is a terminal client for the QKIT E-Learning platform.

Run it without arguments to open the full-screen UI, optionally at a path
such as /courses/12. The subcommands print to stdout for scripting.

Environment Variables:
  QKIT_API_URL    Backend API URL (default: ` + config.DefaultAPIURL + `)
  QKIT_WEB_URL    Web app URL used for links and browser sign-in
  QKIT_DATA_DIR   Where the session and debug.log are kept (default: ~/.qkit)
  QKIT_LOG_LEVEL  debug, info, warn, error or off`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "/"
			if len(args) == 1 {
				start = args[0]
			}
			return a.runTUI(start)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./config.yaml or ~/.qkit/config.yaml)")
	flags.StringVar(&a.apiURL, "api-url", "", "backend API URL (overrides QKIT_API_URL)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides QKIT_LOG_LEVEL)")
	flags.BoolVar(&a.jsonOutput, "json", false, "output JSON instead of human-readable text")

	root.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newCoursesCmd(),
		a.newMyCoursesCmd(),
		a.newOrdersCmd(),
		a.newUsersCmd(),
		a.newQuizCmd(),
		a.newRouteCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the client stack. While the
// TUI owns the terminal, logs go to debug.log in the data dir.
func (a *app) setup(forTUI bool) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	if forTUI {
		logger, closer, err := qlog.NewFile(cfg.LogLevel, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		a.log, a.logFile = logger, closer
	} else {
		a.log = qlog.New(cfg.LogLevel, a.errOut)
	}

	st, err := storage.Open(afero.NewOsFs(), cfg.StoragePath())
	if err != nil {
		return err
	}
	a.storage = st
	a.client = client.New(cfg.APIURL, storage.TokenSource(st),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(a.log),
	)
	a.auth = auth.NewStore(a.client, st, a.log)
	a.stores = store.New(a.client, a.log)
	a.router = router.New(router.Routes(), router.WithLogger(a.log))
	a.router.BeforeEach(router.AuthGuard(a.auth, a.log))

	a.log.Debug().Str("env", cfg.Environment).Str("api_url", cfg.APIURL).Str("storage", st.Path()).Msg("client ready")
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close() //nolint:errcheck
		a.logFile = nil
	}
}

func (a *app) runTUI(start string) error {
	if err := a.setup(true); err != nil {
		return err
	}
	defer a.close()

	m := tui.NewApp(tui.Deps{
		Auth:      a.auth,
		Stores:    a.stores,
		Router:    a.router,
		WebURL:    a.cfg.WebURL,
		PageSize:  a.cfg.PageSize,
		StartPath: start,
		Log:       a.log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// printJSON writes v as indented JSON.
func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}
