package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/optools/svg2ico"
	"github.com/optools/svg2ico/ico"
	"github.com/optools/svg2ico/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┬  ┬┌─┐┌─┐┬┌─┐┌─┐
└─┐└┐┌┘│ ┬┌─┘││  │ │
└─┘ └┘ └─┘└─┘┴└─┘└─┘

SVG to multi-resolution ICO converter.
    Version: %s

`

const (
	defaultSource      = "chip_icon.svg"
	defaultDestination = "chip_icon.ico"
)

// Version indicates the current build version.
var Version string

var (
	// Flags
	source        = flag.String("in", besideExecutable(defaultSource), "Source SVG file")
	destination   = flag.String("out", besideExecutable(defaultDestination), "Destination ICO file")
	sizes         = flag.String("sizes", joinSizes(svg2ico.DefaultSizes), "Comma separated icon sizes")
	referenceSize = flag.Float64("ref", svg2ico.DefaultReferenceSize, "Native edge length of the artwork")
	filter        = flag.String("filter", "lanczos", "Resampling filter: lanczos, catmullrom, mitchell, linear, box, nearest")
	format        = flag.String("format", "png", "Icon payload format: png or bmp")
	workers       = flag.Int("conc", 1, "Number of sizes to render concurrently")
	strict        = flag.Bool("strict", false, "Fail on unsupported SVG elements")
)

func main() {
	log.SetFlags(0)
	utils.EnableColors(term.IsTerminal(int(os.Stderr.Fd())))

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	sz, err := svg2ico.ParseSizes(*sizes)
	if err != nil {
		flag.Usage()
		log.Fatal(utils.DecorateText("\n"+err.Error(), utils.ErrorMessage))
	}

	payload, err := ico.ParseFormat(*format)
	if err != nil {
		flag.Usage()
		log.Fatal(utils.DecorateText("\n"+err.Error(), utils.ErrorMessage))
	}

	conv := &svg2ico.Converter{
		Sizes:         sz,
		ReferenceSize: *referenceSize,
		Filter:        *filter,
		Format:        payload,
		Workers:       *workers,
		Strict:        *strict,
	}

	op := &svg2ico.Ops{
		Src: *source,
		Dst: *destination,
	}
	if err := conv.Execute(op); err != nil {
		log.Fatalf("%s %s",
			utils.DecorateText("\nError:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}

// besideExecutable returns the path of the named file placed in the directory of the running binary.
func besideExecutable(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), name)
}

func joinSizes(sizes []int) string {
	s := make([]string, len(sizes))
	for i, v := range sizes {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ",")
}
