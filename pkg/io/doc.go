// Package io reads and writes bar chart definitions.
//
// # Overview
//
// A definition is a [chart.Config] plus optional value frames and style
// overrides, stored as TOML or JSON. The CLI reads definitions from files;
// the API server decodes them from request bodies and stores them.
//
// # TOML Format
//
//	# Each frame is one Update of the bar values.
//	frames = [
//	  [30, 60, 55],
//	  [90, 10, 5],
//	]
//
//	[chart]
//	size = 3
//	title = "Fruit sold"
//	x_labels = ["Apples", "Pears", "Plums"]
//	x_labels_rotation = 30
//	y_labels = [0, 50, 100]
//	y_legend = "Units"
//	values = [20, 75, 40]
//
//	[styles.bar]
//	fill = "#90CAF9"
//
// Top-level keys must come before the first table. Keys mirror the JSON
// field names of [chart.Config]. Every key is optional and defaults to
// [chart.DefaultConfig]; unknown keys are an error.
//
// # Import
//
// Use [ReadDefinitionFile] to read a file (format chosen by extension) or
// [ReadDefinition] to read from any io.Reader. Both validate the result with
// the same rules the layout engine applies, so a definition that loads will
// plot unless its margins overflow the canvas.
//
// # Export
//
// [WriteDefinition] writes a definition back out; [WriteLayoutJSON] writes
// the computed geometry of a plotted chart.
//
// [chart.Config]: github.com/matzehuels/barchart/pkg/chart.Config
// [chart.DefaultConfig]: github.com/matzehuels/barchart/pkg/chart.DefaultConfig
package io
