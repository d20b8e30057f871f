//go:build ignore

// Generates sample files for trying pqview by hand:
//
//	go run testdata/generate.go
package main

import (
	"bytes"
	"log"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/parquet-go/parquet-go"
)

type Event struct {
	ID      int64     `parquet:"id"`
	Name    string    `parquet:"name,optional"`
	Active  bool      `parquet:"active"`
	Score   float64   `parquet:"score"`
	Born    int32     `parquet:"born,date"`
	Updated time.Time `parquet:"updated,timestamp(millisecond)"`
	Payload []byte    `parquet:"payload"`
}

func main() {
	updated := time.Date(2023, 11, 14, 22, 13, 20, 123000000, time.UTC)
	events := []Event{
		{ID: 1, Name: "alice", Active: true, Score: 95.5, Born: 0, Updated: time.Unix(0, 0).UTC(), Payload: []byte{1, 2, 3}},
		{ID: 2, Name: "bob", Active: false, Score: 82.3, Born: 19000, Updated: updated, Payload: []byte{}},
		{ID: 3, Name: "", Active: true, Score: 88.7, Born: -1, Updated: updated.Add(time.Hour), Payload: []byte("x")},
		{ID: 4, Name: "発売日", Active: true, Score: 91.2, Born: 2932896, Updated: updated.Add(1500 * time.Millisecond)},
		{ID: 5, Name: "eve", Active: false, Score: 76.8, Born: 12345, Updated: updated.AddDate(1, 0, 0)},
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[Event](&buf)
	if _, err := writer.Write(events); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("events.parquet", buf.Bytes(), 0o644); err != nil {
		log.Fatal(err)
	}

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(buf.Bytes()); err != nil {
		log.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("events.parquet.gz", gz.Bytes(), 0o644); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated events.parquet and events.parquet.gz with %d events", len(events))
}
