package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/radovskyb/watcher"
)

var CLI struct {
	Conf    string `short:"c" help:"Path to the site configuration file" default:"blogengine.json" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Drafts bool `help:"Also render unpublished entries as standalone pages."`
		Watch  bool `help:"Keep running and re-render the site on changes to the source directory."`
		Serve  bool `help:"Serve the output directory on localhost."`
		Port   int  `help:"Port for --serve." default:"9999"`
	} `cmd:"" default:"1" help:"Render the site into the output directory"`

	Tree struct{} `cmd:"" help:"Print the overview pages the build would render"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("blogengine"),
		kong.Description("Static blog generator that only rewrites changed files."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	conf, err := readConf(CLI.Conf, logger)
	if err != nil {
		logger.Error("Failed to load configuration", logError(err))
		os.Exit(1)
	}

	switch ctx.Command() {
	case "build":
		runBuild(conf, logger)
	case "tree":
		site, err := ReadSite(conf, false, logger)
		if err != nil {
			logger.Error("Failed to read site", logError(err))
			os.Exit(1)
		}
		fmt.Print(pageTreeString(site.index, conf.SiteTitle))
	}
}

func runBuild(conf *SiteConf, logger *slog.Logger) {
	opts := CLI.Build
	if err := renderSite(conf, opts.Drafts, logger); err != nil {
		logger.Error("Build failed", logError(err))
		if !opts.Watch && !opts.Serve {
			os.Exit(1)
		}
	}

	if opts.Watch && opts.Serve {
		// Run watcher in background while serving
		go rerenderOnChange(conf, opts.Drafts, logger)
	}

	if opts.Serve {
		if err := serveSite(conf.OutDir, opts.Port, logger); err != nil {
			logger.Error("Server stopped", logError(err))
			os.Exit(1)
		}
	} else if opts.Watch {
		// Watch mode without serve: block on the watcher
		if err := rerenderOnChange(conf, opts.Drafts, logger); err != nil {
			logger.Error("Watcher stopped", logError(err))
			os.Exit(1)
		}
	}
}

func renderSite(conf *SiteConf, drafts bool, logger *slog.Logger) error {
	site, err := ReadSite(conf, drafts, logger)
	if err != nil {
		return err
	}

	logger.Info("Writing site", logPath(conf.OutDir))
	renderErr := site.RenderAll()
	return errors.Join(renderErr, site.CopyStaticFiles())
}

func serveSite(dir string, port int, logger *slog.Logger) error {
	addr := "localhost:" + strconv.Itoa(port)
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	logger.Info("Serving site", logPath(dir), slog.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}

func rerenderOnChange(conf *SiteConf, drafts bool, logger *slog.Logger) error {
	logger.Info("Watching for changes", logPath(conf.SourceDir))

	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case event := <-w.Event:
				logger.Info("Source changed, rendering", logPath(event.Path))
				if err := renderSite(conf, drafts, logger); err != nil {
					logger.Error("Build failed", logError(err))
				}
			case err := <-w.Error:
				logger.Error("Watcher error", logError(err))
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(conf.SourceDir); err != nil {
		return ioFailure(conf.SourceDir, err)
	}

	return w.Start(time.Millisecond * 200)
}
