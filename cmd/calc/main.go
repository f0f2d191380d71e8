// Command calc is an interactive calculator.
//
// With no arguments it runs a line-edited prompt with history and tab
// completion. Expressions given as arguments are evaluated in order
// without entering the prompt. Errors are rendered with the offending
// part of the input underlined.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/calclab/calc"
)

const (
	prompt      = ">> "
	historyName = ".calc_history"
)

func main() {
	log.SetFlags(0)
	var (
		verb string
		echo bool
		with [][2]string
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&echo, "echo", false, "print parse trees before results")
	flag.Parse()

	session := calc.NewSession()
	for _, d := range with {
		nm, vl := d[0], d[1]
		// The value is itself an expression, so -given x=pi/2 works.
		// Definitions evaluate in a scratch session to keep ans at 0.
		v, ok, err := calc.NewSession().Eval(vl)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		if !ok {
			log.Fatalf("setting %s: %q produces no value", nm, vl)
		}
		session.Set(nm, v)
	}

	if flag.NArg() > 0 {
		code := 0
		for _, arg := range flag.Args() {
			if !evalLine(session, arg, verb, echo) {
				code = 1
			}
		}
		os.Exit(code)
	}
	repl(session, verb, echo)
}

// evalLine runs one expression and prints its result or its error.
// Reports whether evaluation succeeded.
func evalLine(s *calc.Session, input, verb string, echo bool) bool {
	if echo {
		if e, err := calc.Parse(input); err == nil {
			fmt.Printf("%v : ", e)
		}
	}
	v, ok, err := s.Eval(input)
	if err != nil {
		printError(input, err)
		return false
	}
	if ok {
		fmt.Printf(verb+"\n", v)
	}
	return true
}

// printError renders an error, underlining the offending substring when
// the error carries a span. The underline advances by display width, not
// rune count, so wide characters line up.
func printError(input string, err error) {
	if cerr, ok := err.(*calc.Error); ok && cerr.Span != nil {
		rs := []rune(input)
		sp := *cerr.Span
		if sp.Start > len(rs) {
			sp.Start = len(rs)
		}
		if sp.End > len(rs) {
			sp.End = len(rs)
		}
		pad := runewidth.StringWidth(string(rs[:sp.Start]))
		w := runewidth.StringWidth(string(rs[sp.Start:sp.End]))
		if w < 1 {
			w = 1
		}
		fmt.Fprintln(os.Stderr, "  "+input)
		fmt.Fprintln(os.Stderr, "  "+strings.Repeat(" ", pad)+"^"+strings.Repeat("~", w-1))
	}
	fmt.Fprintln(os.Stderr, "error: "+err.Error())
}

func repl(session *calc.Session, verb string, echo bool) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completer(session))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Println(errors.Wrap(err, "reading history"))
			}
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			log.Println(errors.Wrap(err, "saving history"))
			return
		}
		if _, err := ln.WriteHistory(f); err != nil {
			log.Println(errors.Wrap(err, "saving history"))
		}
		f.Close()
	}()

	for {
		line, err := ln.Prompt(prompt)
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Println()
			return
		default:
			log.Println(err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		ln.AppendHistory(line)
		evalLine(session, line, verb, echo)
	}
}

// completer completes the name being typed against builtin names and the
// session's variables.
func completer(session *calc.Session) liner.Completer {
	return func(line string) []string {
		rs := []rune(line)
		i := len(rs)
		for i > 0 && unicode.IsLetter(rs[i-1]) {
			i--
		}
		head, partial := string(rs[:i]), strings.ToLower(string(rs[i:]))
		if partial == "" {
			return nil
		}
		var out []string
		for _, name := range append(calc.Builtins(), session.Names()...) {
			if strings.HasPrefix(name, partial) {
				out = append(out, head+name)
			}
		}
		return out
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyName)
}
