package process

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"beammp-manager/core/errs"

	"go.uber.org/zap"
)

// ShutdownCommand is written to the console to stop the server gracefully.
const ShutdownCommand = "exit"

// Instance is a running server process. It is owned by whoever called
// Launch.
type Instance struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	mu   sync.Mutex
	done chan struct{}
	err  error
}

// PID returns the operating system process id.
func (i *Instance) PID() int {
	return i.cmd.Process.Pid
}

// Done is closed once the process has exited.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Wait blocks until the process exits and returns its exit error.
func (i *Instance) Wait() error {
	<-i.done
	return i.err
}

// Running reports whether the process is still alive.
func (i *Instance) Running() bool {
	select {
	case <-i.done:
		return false
	default:
		return true
	}
}

// ExitCode returns the exit code, or -1 while the process is running.
func (i *Instance) ExitCode() int {
	if i.Running() {
		return -1
	}
	return i.cmd.ProcessState.ExitCode()
}

// Controller spawns and signals server processes.
type Controller struct {
	logger *zap.Logger
}

// NewController creates a Controller that logs process output to logger.
func NewController(logger *zap.Logger) *Controller {
	return &Controller{logger: logger}
}

// Launch starts executable with workdir as its working directory. env is
// appended to the current environment.
func (c *Controller) Launch(executable, workdir string, env []string) (*Instance, error) {
	const op = "launch server"

	info, err := os.Stat(executable)
	if err != nil {
		return nil, errs.New(errs.KindSpawn, op, err)
	}
	if info.IsDir() {
		return nil, errs.Newf(errs.KindSpawn, op, "%s is a directory", executable)
	}

	cmd := exec.Command(executable)
	cmd.Dir = workdir
	cmd.Env = append(os.Environ(), env...)
	cmd.SysProcAttr = sysProcAttr()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errs.New(errs.KindSpawn, op, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errs.New(errs.KindSpawn, op, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errs.New(errs.KindSpawn, op, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errs.New(errs.KindSpawn, op, fmt.Errorf("starting %s: %w", executable, err))
	}

	inst := &Instance{cmd: cmd, stdin: stdin, done: make(chan struct{})}
	logger := c.logger.With(zap.Int("pid", cmd.Process.Pid))
	logger.Info("Server process started", zap.String("executable", executable), zap.String("dir", workdir))

	var output sync.WaitGroup
	output.Add(2)
	go c.forward(&output, logger, "stdout", stdout)
	go c.forward(&output, logger, "stderr", stderr)

	go func() {
		output.Wait()
		err := cmd.Wait()
		inst.mu.Lock()
		inst.err = err
		inst.stdin.Close()
		inst.mu.Unlock()
		close(inst.done)
		logger.Info("Server process exited", zap.Int("exit_code", cmd.ProcessState.ExitCode()), zap.Error(err))
	}()

	return inst, nil
}

func (c *Controller) forward(wg *sync.WaitGroup, logger *zap.Logger, stream string, r io.Reader) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logger.Info(scanner.Text(), zap.String("stream", stream))
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		logger.Debug("Output stream closed", zap.String("stream", stream), zap.Error(err))
	}
}

// RequestShutdown asks inst to exit by typing ShutdownCommand on its
// console. It never kills the process and is a no-op for nil or exited
// instances.
func (c *Controller) RequestShutdown(inst *Instance) {
	if inst == nil || !inst.Running() {
		return
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if _, err := io.WriteString(inst.stdin, ShutdownCommand+"\n"); err != nil {
		c.logger.Debug("Shutdown request not delivered", zap.Int("pid", inst.PID()), zap.Error(err))
		return
	}
	c.logger.Info("Shutdown requested", zap.Int("pid", inst.PID()))
}
