// Command logviewer tails the JSON log files written by the application and
// renders them in a compact, colored format. Typing narrows the output to
// lines containing the typed text.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

type logEntry map[string]interface{}

// viewer tails every *.log file in a directory and prints matching entries.
type viewer struct {
	logDir string

	filterMu sync.RWMutex
	filter   string
}

func printHelp() {
	fmt.Println("Usage: logviewer [log directory] [-h|--help]")
	fmt.Println("\nOptions:")
	fmt.Println("  [log directory]      Path to the directory containing log files (default: ./logs)")
	fmt.Println("  -h, --help           Show this help message")
	fmt.Println("\nDescription:")
	fmt.Println("  Monitors all *.log files in the directory, parsing JSON entries.")
	fmt.Println("  Type to filter, backspace to remove the last character, Ctrl-C to exit.")
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000000")
}

func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return colorBlue
	case "INFO":
		return colorGreen
	case "WARN":
		return colorYellow
	case "ERROR":
		return colorRed
	case "COMMAND":
		return colorCyan
	default:
		return colorWhite
	}
}

func formatEntry(entry logEntry) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	formatted := fmt.Sprintf("%s%s%s %s%-7s%s %s",
		colorMagenta, formatTimestamp(timestamp), colorReset,
		levelColor(level), strings.ToUpper(level), colorReset,
		msg)

	for key, value := range entry {
		if key != "time" && key != "level" && key != "msg" {
			formatted += fmt.Sprintf("\n    %s%s:%s %v", colorCyan, key, colorReset, value)
		}
	}
	return formatted
}

func (v *viewer) filterGet() string {
	v.filterMu.RLock()
	defer v.filterMu.RUnlock()
	return v.filter
}

// tail polls every log file, printing entries appended since the last poll.
func (v *viewer) tail() {
	positions := make(map[string]int64)
	known := make(map[string]bool)

	for {
		logFiles, err := filepath.Glob(filepath.Join(v.logDir, "*.log"))
		if err != nil {
			fmt.Printf("%sError reading log directory: %v%s\n", colorRed, err, colorReset)
			time.Sleep(time.Second)
			continue
		}

		for _, path := range logFiles {
			if !known[path] {
				fmt.Printf("%sWatching %s%s\n", colorGreen, filepath.Base(path), colorReset)
				known[path] = true
			}
			v.tailFile(path, positions)
		}

		time.Sleep(100 * time.Millisecond)
	}
}

func (v *viewer) tailFile(path string, positions map[string]int64) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("%sError opening %s: %v%s\n", colorRed, filepath.Base(path), err, colorReset)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return
	}
	if stat.Size() < positions[path] {
		// Truncated, start over
		positions[path] = 0
	}

	if _, err := file.Seek(positions[path], io.SeekStart); err != nil {
		return
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry logEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		formatted := formatEntry(entry)
		filter := v.filterGet()
		if filter == "" || strings.Contains(strings.ToLower(formatted), strings.ToLower(filter)) {
			fmt.Println(formatted)
		}
	}

	if pos, err := file.Seek(0, io.SeekCurrent); err == nil {
		positions[path] = pos
	}
}

// handleKeys edits the filter from raw key presses.
func (v *viewer) handleKeys(done chan<- struct{}) {
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Println("Error reading key:", err)
			done <- struct{}{}
			return
		}

		v.filterMu.Lock()
		switch key {
		case keyboard.KeyCtrlC:
			v.filterMu.Unlock()
			fmt.Println("\nExiting...")
			done <- struct{}{}
			return
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			if len(v.filter) > 0 {
				v.filter = v.filter[:len(v.filter)-1]
			}
		case keyboard.KeySpace:
			v.filter += " "
		default:
			if char != 0 {
				v.filter += string(char)
			}
		}
		fmt.Printf("\rCurrent filter: %s", v.filter)
		v.filterMu.Unlock()
	}
}

func cleanup() {
	keyboard.Close()
	fmt.Print("\033[?25h") // Show cursor
}

func main() {
	var help bool
	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&help, "help", false, "Show help")
	flag.Parse()

	if help {
		printHelp()
		os.Exit(0)
	}

	logDir := "./logs"
	if args := flag.Args(); len(args) > 0 {
		info, err := os.Stat(args[0])
		if err == nil && info.IsDir() {
			logDir = args[0]
		} else {
			fmt.Printf("WARNING: '%s' is not a valid directory. Using default '%s'\n", args[0], logDir)
		}
	}
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		fmt.Printf("Log directory '%s' does not exist.\n", logDir)
		os.Exit(1)
	}

	fmt.Printf("Monitoring logs in directory: %s\n", logDir)

	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to open keyboard: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nExiting...")
		cleanup()
		os.Exit(0)
	}()

	v := &viewer{logDir: logDir}
	go v.tail()

	done := make(chan struct{})
	go v.handleKeys(done)

	fmt.Println("Start typing to filter logs. Press Ctrl-C to exit.")
	fmt.Print("Current filter: ")
	<-done
}
