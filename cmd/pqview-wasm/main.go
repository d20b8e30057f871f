//go:build js && wasm

// Command pqview-wasm exposes the viewer to JavaScript.
//
// It registers two functions on the global object:
//
//	initPanicHook()        installs diagnostics, safe to call repeatedly
//	readParquet(bytes)     converts a Uint8Array holding a Parquet file
//
// readParquet returns {columns, rows, total_rows} on success and an Error
// whose message names the failed phase otherwise.
package main

import (
	"context"
	"syscall/js"

	"github.com/vegasq/pqview/reader"
	"github.com/vegasq/pqview/viewer"
)

func main() {
	js.Global().Set("initPanicHook", js.FuncOf(initPanicHook))
	js.Global().Set("readParquet", js.FuncOf(readParquet))

	// keep the module alive for callbacks
	select {}
}

func initPanicHook(js.Value, []js.Value) any {
	viewer.Init()
	return js.Undefined()
}

func readParquet(_ js.Value, args []js.Value) any {
	if len(args) != 1 || !args[0].InstanceOf(js.Global().Get("Uint8Array")) {
		return jsError("readParquet expects a single Uint8Array argument")
	}

	src := args[0]
	data := make([]byte, src.Get("length").Int())
	js.CopyBytesToGo(data, src)

	table, err := viewer.Convert(context.Background(), data)
	if err != nil {
		return jsError(err.Error())
	}
	return toJS(table)
}

// toJS builds plain JS arrays; js.ValueOf only accepts []any, not [][]string.
func toJS(t *reader.Table) js.Value {
	columns := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c
	}

	rows := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}

	return js.ValueOf(map[string]any{
		"columns":    columns,
		"rows":       rows,
		"total_rows": t.TotalRows,
	})
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}
