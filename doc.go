/*
Package svg2ico converts an SVG icon into a multi-resolution Windows ICO file.
The vector drawing is loaded once, rasterized at every requested edge length,
resized with a high quality resampling filter when needed, and the resulting
bitmaps are packed into a single ICO container.

The package provides a command line interface. To check the supported flags type:

	$ svg2ico --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"

		"github.com/optools/svg2ico"
	)

	func main() {
		c := &svg2ico.Converter{
			Sizes: []int{16, 32, 48, 256},
		}

		if _, err := c.Convert("chip_icon.svg", "chip_icon.ico"); err != nil {
			log.Fatalf("Error converting the icon: %v", err)
		}
	}
*/
package svg2ico
