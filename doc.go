/*
Package rondo is a headless painting engine for a circular canvas. It turns
pointer events into brush stamps, accumulates them on a transient stroke layer,
clips them to the circle and merges them into the persistent image, with a
bounded undo history and several export formats.

The package has no user interface. A front end forwards its events to a
PainterSession and pulls the preview raster whenever it needs to repaint:

	package main

	import (
		"log"

		"github.com/esimov/rondo"
	)

	func main() {
		s, err := rondo.NewSession(rondo.DefaultConfig())
		if err != nil {
			log.Fatal(err)
		}
		s.OnPointerDown(360, 360)
		s.OnPointerMove(420, 380)
		s.OnPointerUp()

		if err := s.ExportToFile("canvas.png", rondo.FormatAuto); err != nil {
			log.Fatal(err)
		}
	}

The rondo command replays event scripts (see package script) and exports the
result:

	$ rondo -in strokes.rondo -out canvas.png
*/
package rondo
