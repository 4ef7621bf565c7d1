package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dave-doty/aggie-unterprise/internal/daemon"
	"github.com/dave-doty/aggie-unterprise/internal/pipeline"

	"github.com/spf13/cobra"
)

type watchRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	Dir       string    `json:"dir"`
}

var (
	flagWatchAddr         string
	flagWatchInterval     time.Duration
	flagWatchDetach       bool
	flagWatchPIDFile      string
	flagWatchLogFile      string
	flagWatchEventsBuffer int
	flagWatchChild        bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the reports directory and serve HTTP/SSE endpoints",
	RunE:  runWatch,
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show watcher process and API status",
	RunE:  runWatchStatus,
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running watcher",
	RunE:  runWatchStop,
}

func init() {
	defaultPID := filepath.Join(pipeline.CacheDir(), "aggie-watch.pid")
	defaultLog := filepath.Join(pipeline.CacheDir(), "aggie-watch.log")

	watchCmd.PersistentFlags().StringVar(&flagWatchAddr, "addr", "127.0.0.1:8787", "HTTP listen address")
	watchCmd.PersistentFlags().DurationVar(&flagWatchInterval, "interval", 30*time.Second, "Polling interval")
	watchCmd.PersistentFlags().StringVar(&flagWatchPIDFile, "pid-file", defaultPID, "PID file path")
	watchCmd.PersistentFlags().StringVar(&flagWatchLogFile, "log-file", defaultLog, "Log file path for detached mode")
	watchCmd.PersistentFlags().IntVar(&flagWatchEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	watchCmd.Flags().BoolVar(&flagWatchDetach, "detach", false, "Run watcher as a background process")
	watchCmd.Flags().BoolVar(&flagWatchChild, "child", false, "Internal: mark detached child process")
	_ = watchCmd.Flags().MarkHidden("child")

	watchCmd.AddCommand(watchStatusCmd)
	watchCmd.AddCommand(watchStopCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if flagWatchDetach && flagWatchChild {
		return errors.New("invalid watch launch mode")
	}

	if flagWatchDetach {
		return startWatchDetached()
	}

	return runWatchForeground(cmd)
}

func startWatchDetached() error {
	if err := ensureWatchNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagWatchLogFile), 0o750); err != nil {
		return fmt.Errorf("create watch log directory: %w", err)
	}

	//nolint:gosec // watch log path is configured by the local user
	logf, err := os.OpenFile(flagWatchLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open watch log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	child.Stdout = logf
	child.Stderr = logf
	child.Stdin = nil
	child.Env = os.Environ()

	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached watcher: %w", err)
	}

	fmt.Printf("  Started watcher (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagWatchPIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", flagWatchAddr)
	fmt.Printf("  Log: %s\n", flagWatchLogFile)
	return nil
}

func runWatchForeground(cmd *cobra.Command) error {
	if err := ensureWatchNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagWatchPIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagWatchPIDFile) }()

	state := watchRuntimeState{
		PID:       pid,
		Addr:      flagWatchAddr,
		StartedAt: time.Now(),
		Dir:       s.Dir,
	}
	_ = writeState(statePath(flagWatchPIDFile), state)
	defer func() { _ = os.Remove(statePath(flagWatchPIDFile)) }()

	cfg := daemon.Config{
		Dir:          s.Dir,
		Cleaner:      s.Cleaner,
		UseCache:     !flagNoCache,
		Interval:     flagWatchInterval,
		Addr:         flagWatchAddr,
		EventsBuffer: flagWatchEventsBuffer,
	}
	svc := daemon.New(cfg)

	fmt.Printf("  aggie watcher listening on http://%s\n", flagWatchAddr)
	fmt.Printf("  Polling every %s from %s\n", flagWatchInterval, s.Dir)
	fmt.Printf("  Stop with: aggie watch stop --pid-file %s\n", flagWatchPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWatchStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		fmt.Printf("  Watcher: not running (pid file not found)\n")
		return nil
	}

	alive := processAlive(pid)
	if !alive {
		fmt.Printf("  Watcher: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := flagWatchAddr
	if st, err := readState(statePath(flagWatchPIDFile)); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	fmt.Printf("  Watcher PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if st.LastPollAt.IsZero() {
		fmt.Printf("  Last poll: pending\n")
	} else {
		fmt.Printf("  Last poll: %s\n", st.LastPollAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Poll count: %d\n", st.PollCount)
	fmt.Printf("  Reports: %d\n", st.Summary.Reports)
	if st.Summary.LatestDate != "" {
		fmt.Printf("  Latest: %s (%d projects)\n", st.Summary.LatestDate, st.Summary.Projects)
	}
	fmt.Printf("  Expenses: $%.2f\n", st.Summary.TotalExpenses)
	fmt.Printf("  Balance: $%.2f\n", st.Summary.TotalBalance)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runWatchStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		return errors.New("watcher is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find watcher process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal watcher process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagWatchPIDFile)
			_ = os.Remove(statePath(flagWatchPIDFile))
			fmt.Printf("  Stopped watcher (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("watcher (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureWatchNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("watcher already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // watch pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st watchRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (watchRuntimeState, error) {
	var st watchRuntimeState
	//nolint:gosec // watch state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
