// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

// Package osc implements the Open Sound Control 1.0 wire format: message
// and bundle encoding/decoding, the address pattern matcher, and a packet
// dispatcher that walks a decoded packet and hands each contained message
// to a caller-supplied handler together with its enclosing time-tag.
//
// The package does no network or serial I/O. Callers are expected to
// supply bytes (from a socket, a serial port, a file, whatever) and a
// Handler; see the slip package for a byte-stream framer built on top of
// this package.
//
// Supported argument type tags:
//
//	'i' int32           'f' float32          's' string
//	'b' []byte (blob)    'h' int64            't' Timetag
//	'd' float64          'S' AltString        'c' Char
//	'r' RGBA             'm' MIDI             'T' true
//	'F' false            'N' nil              'I' Infinitum
//	'[' BeginArray       ']' EndArray
package osc
