package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/table"
)

var (
	shellBuckets int
	shellTol     int
)

func init() {
	cmd := newShellCmd()
	cmd.Flags().IntVar(&shellBuckets, "buckets", table.DefaultBuckets, "Initial bucket count")
	cmd.Flags().IntVar(&shellTol, "tolerance", table.DefaultTolerance, "Resize tolerance percent, 0 disables resizing")
	rootCmd.AddCommand(cmd)
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive table shell",
		Long: `The shell command opens a readline-style loop against a live string
table, for trying out insert, lookup, removal, and resize behavior by hand.

Example:
  memctl shell
  memctl shell --buckets 64 --tolerance 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &shell{
				tbl: table.NewStrings[string](&table.Config{
					InitialBuckets: shellBuckets,
					Tolerance:      shellTol,
				}),
			}
			return sh.run()
		},
	}
}

// shell is the interactive command loop.
type shell struct {
	tbl   *table.Table[string, string]
	liner *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".memctl_history")
}

// run starts the interactive loop.
func (s *shell) run() error {
	s.liner = liner.NewLiner()
	defer s.liner.Close()

	s.liner.SetCtrlCAborts(true)
	s.liner.SetCompleter(s.completer)

	if f, err := os.Open(historyFile()); err == nil {
		s.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("memctl shell (buckets=%d, tolerance=%d)\n", s.tbl.Buckets(), shellTol)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := s.liner.Prompt("memctl> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			s.saveHistory()

			return nil

		case "help", "?":
			s.printHelp()

		case "put":
			s.cmdPut(args)

		case "get":
			s.cmdGet(args)

		case "del", "delete":
			s.cmdDel(args)

		case "pop":
			s.cmdPop()

		case "len", "count":
			s.cmdLen()

		case "stats":
			s.cmdStats()

		case "dump":
			s.cmdDump(args)

		case "bulk":
			s.cmdBulk(args)

		case "clear":
			s.tbl.Clear()
			fmt.Println("Table cleared.")

		case "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	s.saveHistory()

	return nil
}

// saveHistory persists command history to disk.
func (s *shell) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		s.liner.WriteHistory(f)
		f.Close()
	}
}

// completer provides tab completion for commands.
func (s *shell) completer(line string) []string {
	commands := []string{
		"put", "get", "del", "delete", "pop",
		"len", "count", "stats", "dump", "bulk",
		"clear", "cls", "help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (s *shell) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  put <key> <value...>   Insert or replace an entry")
	fmt.Println("  get <key>              Look up an entry")
	fmt.Println("  del <key>              Remove an entry")
	fmt.Println("  pop                    Remove the first entry in bucket order")
	fmt.Println("  len                    Count entries and buckets")
	fmt.Println("  stats                  Show table shape")
	fmt.Println("  dump [values]          Print every bucket's chain")
	fmt.Println("  bulk <count> [prefix]  Insert N generated entries")
	fmt.Println("  clear                  Drop every entry")
	fmt.Println("  cls                    Clear the screen")
	fmt.Println("  help                   Show this help")
	fmt.Println("  exit / quit / q        Exit")
}

func (s *shell) cmdPut(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: put <key> <value...>")
		return
	}
	key, value := args[0], strings.Join(args[1:], " ")
	if prev, replaced := s.tbl.Insert(key, value); replaced {
		fmt.Printf("Replaced %q (was %q)\n", key, prev)
	} else {
		fmt.Printf("Inserted %q\n", key)
	}
}

func (s *shell) cmdGet(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: get <key>")
		return
	}
	if v, ok := s.tbl.Find(args[0]); ok {
		fmt.Printf("%q = %q\n", args[0], v)
	} else {
		fmt.Printf("%q not found\n", args[0])
	}
}

func (s *shell) cmdDel(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: del <key>")
		return
	}
	if v, ok := s.tbl.Remove(args[0]); ok {
		fmt.Printf("Removed %q (was %q)\n", args[0], v)
	} else {
		fmt.Printf("%q not found\n", args[0])
	}
}

func (s *shell) cmdPop() {
	if v, ok := s.tbl.Pop(); ok {
		fmt.Printf("Popped %q\n", v)
	} else {
		fmt.Println("Table is empty.")
	}
}

func (s *shell) cmdLen() {
	fmt.Printf("%d entries in %d buckets\n", s.tbl.Len(), s.tbl.Buckets())
}

func (s *shell) cmdStats() {
	st := s.tbl.Stats()
	fmt.Printf("entries:       %d\n", st.Entries)
	fmt.Printf("buckets:       %d\n", st.Buckets)
	fmt.Printf("occupied:      %d\n", st.Occupied)
	fmt.Printf("longest chain: %d\n", st.MaxChain)
	fmt.Printf("load:          %.3f\n", st.Load)
}

func (s *shell) cmdDump(args []string) {
	opts := table.DefaultDumpOptions()
	if len(args) > 0 && strings.EqualFold(args[0], "values") {
		opts.ShowValues = true
	}
	if err := s.tbl.Dump(os.Stdout, opts); err != nil {
		fmt.Printf("dump failed: %v\n", err)
	}
}

func (s *shell) cmdBulk(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: bulk <count> [prefix]")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Printf("Bad count: %s\n", args[0])
		return
	}
	prefix := "key"
	if len(args) > 1 {
		prefix = args[1]
	}

	inserted, replaced := 0, 0
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("%s-%06d", prefix, i)
		if _, dup := s.tbl.Insert(k, strconv.Itoa(i)); dup {
			replaced++
		} else {
			inserted++
		}
	}
	fmt.Printf("Inserted %d, replaced %d; now %d entries in %d buckets\n",
		inserted, replaced, s.tbl.Len(), s.tbl.Buckets())
}
