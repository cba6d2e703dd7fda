package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/logrusorgru/aurora"
	"github.com/mitchellh/go-homedir"
	"github.com/osuushi/linkroute"
	"github.com/osuushi/linkroute/advanced"
	"github.com/osuushi/linkroute/dbg"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Demo of the routers. "route" reads an SVG scene (see advanced.Scene for the
// attributes it understands), routes every link and prints the bend points.
// "hull" reads newline separated points in the form "x y" on stdin and prints
// their convex hull. "path" describes a piece of path data.

var (
	app     = kingpin.New("linkroute", "Route diagram links around obstacles.")
	verbose = app.Flag("verbose", "Log router decisions to stderr.").Short('v').Bool()
	plain   = app.Flag("plain", "Disable colours.").Bool()

	routeCmd       = app.Command("route", "Route every link of an SVG scene.")
	routeRouter    = routeCmd.Flag("router", "Router to use instead of each link's own.").Enum(advanced.RouterNames()...)
	routeConfig    = routeCmd.Flag("config", "Router options file (.yaml, .yml or .toml).").String()
	routePNG       = routeCmd.Flag("png", "Render the routed scene to this PNG and preview it.").String()
	routeSVG       = routeCmd.Flag("svg", "Write the routed scene to this SVG.").String()
	routeObstacles = routeCmd.Flag("obstacles", "Draw element boxes grown by this padding in the SVG.").Float64()
	routeDump      = routeCmd.Flag("dump", "Dump the routes.").Bool()
	routeWatch     = routeCmd.Flag("watch", "Route again whenever the scene file changes.").Bool()
	routeScenePath = routeCmd.Arg("scene", "SVG scene.").Required().String()

	hullCmd = app.Command("hull", `Print the convex hull of "x y" points read from stdin.`)

	pathCmd  = app.Command("path", "Print the length, bounding box and normal form of path data.")
	pathData = pathCmd.Arg("data", "Path data, e.g. \"M 0 0 L 10 0\".").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	au := aurora.NewAurora(!*plain)

	switch command {
	case routeCmd.FullCommand():
		scenePath, err := homedir.Expand(*routeScenePath)
		app.FatalIfError(err, "route")
		run := func() {
			if err := routeScene(os.Stdout, scenePath, logger); err != nil {
				fmt.Fprintln(os.Stderr, au.Red(err.Error()))
			}
		}
		run()
		if *routeWatch {
			app.FatalIfError(watch(scenePath, run, logger), "watch")
		}

	case hullCmd.FullCommand():
		points, err := readPoints(os.Stdin)
		app.FatalIfError(err, "hull")
		fmt.Printf("Read %d points\n", len(points))
		for _, p := range linkroute.ConvexHull(points) {
			fmt.Println(p.X, p.Y)
		}

	case pathCmd.FullCommand():
		app.FatalIfError(describePath(os.Stdout, *pathData, au), "path")
	}
}

func routeScene(out io.Writer, scenePath string, logger *slog.Logger) error {
	opt := &advanced.Options{}
	if *routeConfig != "" {
		var err error
		opt, err = advanced.LoadOptions(*routeConfig)
		if err != nil {
			return err
		}
	}
	opt.Logger = logger

	scene, err := advanced.LoadScene(scenePath)
	if err != nil {
		return err
	}
	logger.Info("loaded scene", "elements", len(scene.Graph.Elements()), "links", len(scene.Links))

	routes, err := scene.RouteAll(*routeRouter, opt)
	if err != nil {
		return err
	}
	for i, link := range scene.Links {
		fmt.Fprintln(out, dbg.Describe(link, routes[i], *plain))
	}

	if *routeDump {
		dbg.Dump(out, routes)
	}
	if *routeSVG != "" {
		if err := writeSVG(*routeSVG, scene, routes); err != nil {
			return err
		}
	}
	if *routePNG != "" {
		path, err := homedir.Expand(*routePNG)
		if err != nil {
			return err
		}
		if err := dbg.DrawScene(scene, routes, 1, path, true); err != nil {
			return err
		}
	}
	return nil
}

func writeSVG(path string, scene *advanced.Scene, routes []advanced.Route) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating svg")
	}
	if err := dbg.WriteSVG(file, scene, routes, *routeObstacles); err != nil {
		file.Close()
		return errors.Wrap(err, "writing svg")
	}
	return file.Close()
}

// Editors often replace a file rather than write to it, so the directory is
// watched and events are filtered by name.
func watch(path string, run func(), logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}
	logger.Info("watching for changes", "scene", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("scene changed", "op", event.Op.String())
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

func readPoints(in io.Reader) ([]linkroute.Point, error) {
	var points []linkroute.Point
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.Errorf("expected \"x y\", got %q", scanner.Text())
		}
		p := linkroute.ParsePoint(fields[0] + " " + fields[1])
		if p.IsNaN() {
			return nil, errors.Errorf("bad point %q", scanner.Text())
		}
		points = append(points, p)
	}
	return points, errors.Wrap(scanner.Err(), "reading points")
}

func describePath(out io.Writer, data string, au aurora.Aurora) error {
	path, err := linkroute.ParsePath(data)
	if err != nil {
		return err
	}
	serialized, err := path.Serialize()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %g\n", au.Bold("length"), path.Length(nil))
	if bbox, ok := path.BBox(); ok {
		fmt.Fprintf(out, "%s %s\n", au.Bold("bbox"), bbox)
	}
	fmt.Fprintf(out, "%s %s\n", au.Bold("path"), serialized)
	return nil
}
