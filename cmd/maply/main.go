package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/go-maply/maply"
	"github.com/go-maply/maply/utils"
)

const HelpBanner = `
┌┬┐┌─┐┌─┐┬  ┬ ┬
│││├─┤├─┘│  └┬┘
┴ ┴┴ ┴┴  ┴─┘ ┴

2-D vector map plotting library.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source       = flag.String("in", "", "Source GeoJSON file (use - for a stdin pipe)")
	destination  = flag.String("out", pipeName, "Destination image file")
	title        = flag.String("title", "", "Figure title")
	width        = flag.Int("width", 900, "Figure width in pixels")
	height       = flag.Int("height", 700, "Figure height in pixels")
	layerName    = flag.String("layer", "features", "Layer name for the input features")
	fillColor    = flag.String("color", "blue", "Layer fill color")
	edgeColor    = flag.String("edgecolor", "black", "Layer edge color")
	alpha        = flag.Float64("alpha", 1.0, "Layer fill opacity")
	blendMode    = flag.String("blend", "", "Layer blend mode (darken, lighten, multiply, screen, overlay)")
	labelColumn  = flag.String("label", "", "Attribute column drawn as the feature label")
	randomCount  = flag.Int("random", 0, "Number of random shapes to generate")
	randomSeed   = flag.Uint64("seed", 0, "Random shape generator seed (0 picks a new one)")
	gridSpec     = flag.String("grid", "", "Split a demo rectangle into a RxC grid")
	preview      = flag.Bool("preview", false, "Braille preview of the figure on stderr")
	previewWidth = flag.Int("pwidth", 80, "Preview width in characters")
	verbose      = flag.Bool("verbose", false, "Log skipped geometries and other diagnostics")

	// spinner used to instantiate and call the progress indicator.
	spinner *utils.Spinner
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" && *randomCount == 0 && *gridSpec == "" {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide an input GeoJSON file, a random shape count or a grid spec!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	if *verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		zlog, err := cfg.Build()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to set up the logger: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		defer zlog.Sync()
		maply.SetLogger(zlog)
	}

	if *randomSeed != 0 {
		maply.Seed(*randomSeed)
	}

	m := maply.NewMap(
		maply.WithTitle(*title),
		maply.WithSize(*width, *height),
	)

	if *source != "" {
		if err := addInputLayer(m); err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source features: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}
	if *randomCount > 0 {
		if err := addRandomLayers(m, *randomCount); err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to generate the random shapes: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}
	if *gridSpec != "" {
		if err := addGridLayer(m, *gridSpec); err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to build the grid layer: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MAPLY", utils.StatusMessage),
		utils.DecorateText("is rendering the map...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	now := time.Now()
	fig, err := render(m)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError rendering the map: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}

	err = save(fig, *destination)
	printStatus(*destination, err)

	if *preview {
		if err := fig.Preview(os.Stderr, *previewWidth); err != nil {
			fmt.Fprintf(os.Stderr, utils.DecorateText("Preview failed: %v\n", utils.ErrorMessage), err)
		}
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// addInputLayer decodes the source feature collection into a frame layer
// styled from the color flags.
func addInputLayer(m *maply.Map) error {
	data, err := readInput(*source)
	if err != nil {
		return err
	}
	frame, err := maply.UnmarshalGeoFrame(data)
	if err != nil {
		return err
	}

	style := maply.Style{
		"color":     *fillColor,
		"edgecolor": *edgeColor,
		"alpha":     *alpha,
	}
	if *blendMode != "" {
		style["blend"] = *blendMode
	}

	opts := []maply.AddOption{maply.WithStyle(style)}
	if *labelColumn != "" {
		opts = append(opts, maply.WithLabel(*labelColumn))
	}
	m.AddFrame(frame, *layerName, opts...)
	return nil
}

// addRandomLayers generates n random shapes, grouped into one layer per
// shape kind.
func addRandomLayers(m *maply.Map, n int) error {
	styles := map[string]maply.Style{
		"points":   {"color": "red"},
		"lines":    {"color": "orange"},
		"polygons": {"color": "green", "alpha": 0.6},
	}
	for i := 0; i < n; i++ {
		s, err := maply.Random("", maply.DefaultBounds)
		if err != nil {
			return err
		}
		var name string
		switch s.(type) {
		case *maply.Point:
			name = "points"
		case *maply.Line:
			name = "lines"
		default:
			name = "polygons"
		}
		m.AddShape(s, name, maply.WithStyle(styles[name]))
	}
	return nil
}

// addGridLayer splits a demo rectangle into the requested grid, labeling
// each cell with its row-major index.
func addGridLayer(m *maply.Map, spec string) error {
	var rows, cols int
	if _, err := fmt.Sscanf(spec, "%dx%d", &rows, &cols); err != nil {
		return fmt.Errorf("invalid grid spec %q, want RxC: %w", spec, err)
	}

	rect, err := maply.NewRect(orb.Point{0, 0}, 100, 100)
	if err != nil {
		return err
	}
	cells, err := rect.SplitGrid(rows, cols)
	if err != nil {
		return err
	}
	for i, cell := range cells {
		m.AddShape(cell, "grid",
			maply.WithStyle(maply.Style{"color": "#e8f4f8", "alpha": 0.5}),
			maply.WithLabel(fmt.Sprintf("%d", i)),
		)
	}
	return nil
}

// render runs the figure rendering with the progress indicator active.
func render(m *maply.Map) (*maply.Figure, error) {
	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	// Start the progress indicator.
	spinner.Start()
	fig, err := m.Render()

	spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MAPLY", utils.StatusMessage),
		utils.DecorateText("is rendering the map... ✔", utils.DefaultMessage))

	// Stop the progress indicator.
	spinner.Stop()

	return fig, err
}

// readInput loads the source bytes from a regular file or the stdin pipe.
func readInput(in string) ([]byte, error) {
	if in == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(in)
}

// save writes the figure to the destination file or the stdout pipe.
func save(fig *maply.Figure, out string) error {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return fig.Encode(os.Stdout, imaging.PNG)
	}
	return fig.Save(out)
}

// printStatus displays the relevant information about the rendering process.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError saving the map: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe map has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
