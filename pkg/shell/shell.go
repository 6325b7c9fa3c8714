// Package shell is the entry point for the terminal interface of deskcalc.
//
// Without arguments, it runs an interactive session reading one expression
// per line. With -c, every argument is evaluated as an expression; otherwise
// every argument is taken as the path of a calc sheet.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/deskcalc/deskcalc/pkg/eval"
	"github.com/deskcalc/deskcalc/pkg/logutil"
	"github.com/deskcalc/deskcalc/pkg/parse"
	"github.com/deskcalc/deskcalc/pkg/prog"
	"github.com/deskcalc/deskcalc/pkg/store"
	"github.com/deskcalc/deskcalc/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the calculator subprogram.
type Program struct {
	mode, angle string
	codeInArg   bool
	db, rc      string
	noRC        bool
	json        *bool
	log         *string
}

// RegisterFlags registers the flags of the calculator.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.mode, "mode", "", "calculator mode, normal or scientific (default normal)")
	fs.StringVar(&p.angle, "angle", "", "angle unit, deg or rad (default deg)")
	fs.BoolVar(&p.codeInArg, "c", false, "evaluate the arguments as expressions")
	fs.StringVar(&p.db, "db", "", "path to the database to keep history in")
	fs.StringVar(&p.rc, "rc", "", "path to the config file (rc.yaml or rc.toml)")
	fs.BoolVar(&p.noRC, "norc", false, "don't read the config file")
	p.json = fs.JSON()
	p.log = fs.Log()
}

// Run runs the calculator.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	cfg, err := p.config()
	if err != nil {
		return err
	}
	if *p.log == "" && cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	mode, err := eval.ParseMode(cfg.Mode)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	unit, err := eval.ParseAngleUnit(cfg.Angle)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	ev := eval.NewEvaler(mode)
	ev.Context.SetAngleUnit(unit)

	history, cleanup := openHistory(fds[2], cfg.DB)
	defer cleanup()
	ev.AddAfterEval(func(src parse.Source, v float64) {
		if _, err := history.AddEntry(src.Code, v); err != nil {
			logger.Println("failed to add history entry:", err)
		}
	})

	switch {
	case p.codeInArg:
		if len(args) == 0 {
			return prog.BadUsage("-c requires at least one expression")
		}
		return prog.Exit(evalArgs(fds, ev, args, *p.json))
	case len(args) > 0:
		return prog.Exit(evalSheets(fds, ev, args, *p.json))
	}
	Interact(fds, &InteractConfig{Evaler: ev, History: history})
	return nil
}

// Resolves the configuration from the config file and the flags, with the
// flags taking precedence.
func (p *Program) config() (*Config, error) {
	cfg := &Config{}
	if !p.noRC {
		explicit := p.rc != ""
		path := p.rc
		if !explicit {
			var err error
			path, err = rcPath()
			if err != nil {
				logger.Println("can't determine config path:", err)
			}
		}
		if path != "" {
			loaded, err := loadConfig(path)
			switch {
			case err == nil:
				cfg = loaded
			case explicit || !isNotExist(err):
				return nil, err
			}
		}
	}
	override(&cfg.Mode, p.mode)
	override(&cfg.Angle, p.angle)
	override(&cfg.DB, p.db)
	if cfg.Mode == "" {
		cfg.Mode = eval.Normal.String()
	}
	if cfg.Angle == "" {
		cfg.Angle = eval.Degrees.String()
	}
	return cfg, nil
}

func override(p *string, flag string) {
	if flag != "" {
		*p = flag
	}
}

// Opens the history store. Without a database, history is kept in memory.
func openHistory(stderr io.Writer, db string) (storedefs.Store, func()) {
	if db == "" {
		return store.NewMemStore(), func() {}
	}
	st, err := store.NewStore(db)
	if err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
		fmt.Fprintln(stderr, "History will be kept in memory.")
		return store.NewMemStore(), func() {}
	}
	return st, func() {
		if err := st.Close(); err != nil {
			logger.Println("failed to close database:", err)
		}
	}
}
