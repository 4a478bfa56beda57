package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	pipelinellm "github.com/davy1ex/pipelineLLM"
	"github.com/davy1ex/pipelineLLM/internal/engine"
)

// PythonService runs user code from python nodes in an isolated temp
// workspace with the configured interpreter. The variables the engine injects
// (data_input/input_data) are already part of the submitted code.
type PythonService struct {
	logger  zerolog.Logger
	bin     string
	timeout time.Duration
}

func NewPythonService() *PythonService {
	cfg := pipelinellm.GetConfig()
	return &PythonService{
		logger:  pipelinellm.Logger,
		bin:     cfg.PythonConfig.Bin,
		timeout: time.Duration(cfg.PythonConfig.TimeoutSeconds) * time.Second,
	}
}

// Run implements engine.CodeRunner. Execution failures (non-zero exit,
// timeout) are reported in the result's Error field, not as a Go error; the
// returned error covers workspace problems only.
func (slf *PythonService) Run(ctx context.Context, code string) (engine.CodeResult, error) {
	var result engine.CodeResult

	workDir, err := os.MkdirTemp("", "pyrun-*")
	if err != nil {
		return result, err
	}
	defer os.RemoveAll(workDir)

	scriptPath := filepath.Join(workDir, "main.py")
	if err := os.WriteFile(scriptPath, []byte(code), 0644); err != nil {
		return result, err
	}

	runCtx, cancel := context.WithTimeout(ctx, slf.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, slf.bin, scriptPath)
	cmd.Dir = workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Output = result.Stdout

	if runErr != nil {
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			result.Error = "python execution timed out after " + slf.timeout.String()
		case result.Stderr != "":
			result.Error = result.Stderr
		default:
			result.Error = runErr.Error()
		}
		slf.logger.Warn().Str("error", result.Error).Msg("Python execution failed")
	}

	return result, nil
}
