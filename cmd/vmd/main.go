package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/vmd"
	"pkt.systems/vmd/internal/markdown"
)

const (
	envTheme     = "VMD_THEME"
	envPrefix    = "VMD_"
	defaultWidth = vmd.DefaultColumns
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func init() {
	version.SetDefaultModule("pkt.systems/vmd")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		verbosity   int
		useStdin    bool
		themeName   string
		configPath  string
		widthFlag   int
		outPath     string
		boring      bool
		listThemes  bool
		printConfig bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("vmd", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v WARN, -vv INFO, -vvv DEBUG)")
	flags.BoolVar(&useStdin, "stdin", false, "Read Markdown from stdin")
	flags.StringVarP(&themeName, "theme", "t", "", "Theme name or path (default $"+envTheme+" or \""+vmd.DefaultTheme+"\")")
	flags.StringVarP(&configPath, "config", "c", "", "Extra config file applied after the rc files")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses config, then terminal width)")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate output without escape sequences")
	flags.BoolVar(&listThemes, "list-themes", false, "List built-in themes")
	flags.BoolVar(&printConfig, "print-config", false, "Print the resolved configuration and exit")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: vmd [flags] FILE|URL...\n")
		fmt.Fprintf(stderr, "       vmd [flags] --stdin\n")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return exitOK
	}
	if listThemes {
		for _, name := range vmd.AvailableThemes() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	}

	logger := newLogger(stderr, verbosity)

	cfg, err := loadConfig(themeName, configPath, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return exitUsage
	}
	if boring {
		cfg.Styles = vmd.PlainStyles()
	}
	if printConfig {
		if err := vmd.WriteConfig(stdout, cfg); err != nil {
			logger.Error().Err(err).Msg("print config")
			return exitFailed
		}
		return exitOK
	}

	names := flags.Args()
	if useStdin && len(names) > 0 {
		logger.Error().Strs("inputs", names).Msg("--stdin cannot be combined with input files")
		return exitUsage
	}
	var reader io.Reader
	switch {
	case useStdin:
		reader = stdin
	case len(names) > 0:
		chain, err := newInputChain(ctx, names, &logger)
		if err != nil {
			logger.Error().Err(err).Msg("open input")
			return exitUsage
		}
		defer func() {
			if err := chain.Close(); err != nil {
				logger.Warn().Err(err).Msg("close input")
			}
		}()
		reader = chain
	default:
		flags.Usage()
		return exitFailed
	}

	writer := stdout
	var outFile *os.File
	if strings.TrimSpace(outPath) != "" {
		if outFile, err = createOutput(outPath); err != nil {
			logger.Error().Err(err).Msg("open output")
			return exitFailed
		}
		defer func() { _ = outFile.Close() }()
		writer = outFile
	}

	width := resolveWidth(widthFlag, cfg.Formatting.Columns, writer)
	logger.Info().Int("width", width).Bool("boring", boring).Msg("rendering")
	if err := markdown.Render(markdown.RenderRequest{
		Reader:  reader,
		Writer:  writer,
		Columns: width,
		Config:  &cfg,
		Options: []markdown.RenderOption{markdown.WithLogger(logger)},
	}); err != nil {
		logger.Error().Err(err).Msg("render failed")
		return exitFailed
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			logger.Error().Err(err).Str("path", outFile.Name()).Msg("write output")
			return exitFailed
		}
	}
	return exitOK
}

// loadConfig layers the theme, the rc files, an explicit config file and
// VMD_STYLES_*/VMD_FORMATTING_* variables.
func loadConfig(themeName, configPath string, logger *zerolog.Logger) (vmd.Config, error) {
	if themeName == "" {
		themeName = os.Getenv(envTheme)
	}
	if themeName == "" {
		themeName = vmd.DefaultTheme
	}
	paths := rcPaths()
	if configPath != "" {
		clean := vmd.ExpandHome(configPath)
		if _, err := os.Stat(clean); err != nil {
			return vmd.Config{}, fmt.Errorf("config: %w", err)
		}
		paths = append(paths, clean)
	}
	logger.Debug().Str("theme", themeName).Strs("paths", paths).Msg("loading config")
	return vmd.LoadConfig(vmd.LoadRequest{
		Theme:     themeName,
		Paths:     paths,
		EnvPrefix: envPrefix,
		Logger:    logger,
	})
}

func rcPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".vmdrc"))
	}
	return append(paths, filepath.Join(xdg.ConfigHome, "vmd", "vmdrc"))
}

// resolveWidth picks the flag, then the configured columns, then the
// terminal width, then $COLUMNS.
func resolveWidth(flagWidth, configWidth int, w io.Writer) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if configWidth > 0 {
		return configWidth
	}
	return terminalWidth(w, defaultWidth)
}

func terminalWidth(w io.Writer, fallback int) int {
	if fd, ok := terminalFd(w); ok {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if width, err := strconv.Atoi(value); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

// terminalFd returns the descriptor of w if it is a terminal.
func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
