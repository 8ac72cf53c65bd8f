// Package config loads the framefx YAML configuration.
//
// A file only needs the settings it changes; everything else keeps the value
// from Default:
//
//	log:
//	  level: debug
//	pipeline:
//	  mode: brightness
//	  brightness_delta: 80
//	source:
//	  type: dir
//	  dir: ./frames
//	  watch: true
//	sink:
//	  dir: ./out
//	  format: bmp
package config
