package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grimdork/climate/arg"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/Urethramancer/sicasm/assembler"
	"github.com/Urethramancer/sicasm/catalog"
)

func main() {
	opt := arg.New("sicasm")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "i", "inst", "Instruction specification file (default: built-in SIC/XE set).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "source", "Assembly source file.", "input.txt", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "y", "symtab", "Symbol table output file.", "symtab.txt", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "o", "output", "Object module output file.", "output.txt", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "t", "table", "Also print the symbol table as a formatted listing.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Log debug information.", false, false, arg.VarBool, nil)

	err := opt.Parse(os.Args[1:])
	if err != nil && err != arg.ErrNoArgs {
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
		atexit.Exit(1)
	}

	level := slog.LevelInfo
	if opt.GetBool("verbose") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Both inputs must be readable before anything is assembled or written.
	insts, err := loadCatalog(opt.GetString("inst"))
	if err != nil {
		log.Error("cannot load instruction specification", "err", err)
		atexit.Exit(1)
	}
	src, err := os.ReadFile(opt.GetString("source"))
	if err != nil {
		log.Error("cannot read source", "err", err)
		atexit.Exit(1)
	}

	asm := assembler.New(insts, assembler.WithLogger(log))
	prog, err := asm.AssembleSource(string(src))
	if err != nil {
		log.Error("assembly failed", "err", err)
		atexit.Exit(1)
	}

	if err := writeFile(opt.GetString("symtab"), prog.WriteSymbols); err != nil {
		log.Error("cannot write symbol table", "err", err)
		atexit.Exit(1)
	}
	if err := writeFile(opt.GetString("output"), prog.WriteObject); err != nil {
		log.Error("cannot write object module", "err", err)
		atexit.Exit(1)
	}

	if opt.GetBool("table") {
		printSymbols(prog)
	}
	atexit.Exit(0)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.Load(f)
}

// writeFile creates path and hands it to write. The file is removed again if
// the process exits before it was completed.
func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	done := false
	atexit.Register(func() {
		if !done {
			os.Remove(path)
		}
	})

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	done = true
	return nil
}

func printSymbols(prog *assembler.Program) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Section", "Symbol", "Address"})
	for i, s := range prog.Sections {
		if i > 0 {
			tw.AppendSeparator()
		}
		for _, sym := range s.Symbols.Entries() {
			tw.AppendRow(table.Row{s.Name, sym.Name, fmt.Sprintf("%04X", uint32(sym.Value))})
		}
	}
	tw.Render()
}
