/*
Package maply is a small convenience layer for building 2-D vector geometries
(points, lines, polygons and their multi-part variants), attaching tabular
attribute data to them and rendering them as styled, labeled and legended map
layers.

The package provides a command line interface for rendering GeoJSON files or
randomly generated shapes into image files. To check the supported commands type:

	$ maply --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"

		"github.com/go-maply/maply"
		"github.com/paulmach/orb"
	)

	func main() {
		rect, err := maply.NewRect(orb.Point{0, 0}, 4, 4)
		if err != nil {
			log.Fatalf("Error building rectangle: %v", err)
		}
		cells, err := rect.SplitGrid(2, 2)
		if err != nil {
			log.Fatalf("Error splitting rectangle: %v", err)
		}

		m := maply.NewMap(maply.WithTitle("Grid"))
		for _, cell := range cells {
			m.AddShape(cell, "cells", maply.WithStyle(maply.Style{"color": "green", "alpha": 0.4}))
		}

		fig, err := m.Render()
		if err != nil {
			log.Fatalf("Error rendering map: %v", err)
		}
		if err := fig.Save("grid.png"); err != nil {
			log.Fatalf("Error saving figure: %v", err)
		}
	}
*/
package maply
