package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Executor handles the execution of individual hooks
type Executor struct {
	ctx *Context
}

// NewExecutor creates a new hook executor
func NewExecutor(ctx *Context) *Executor {
	return &Executor{ctx: ctx}
}

// ExecuteWithTimeout executes a command with timeout handling
func (e *Executor) ExecuteWithTimeout(ctx context.Context, cmd *exec.Cmd) ([]byte, error) {
	if e.ctx.Timeout > 0 {
		timeoutCtx, cancel := context.WithTimeout(ctx, e.ctx.Timeout)
		defer cancel()

		// Create a copy of the command with the timeout context
		cmdWithTimeout := exec.CommandContext(timeoutCtx, cmd.Path, cmd.Args[1:]...)
		cmdWithTimeout.Dir = cmd.Dir
		cmdWithTimeout.Env = cmd.Env
		cmdWithTimeout.Stdin = cmd.Stdin
		cmdWithTimeout.Stdout = cmd.Stdout
		cmdWithTimeout.Stderr = cmd.Stderr

		return cmdWithTimeout.CombinedOutput()
	}

	return cmd.CombinedOutput()
}

// ProcessExecutionResult processes the result of command execution.
// filesModified reports whether the hook changed tracked content in the work
// tree (captured by diffing before and after the run), which blocks the
// commit even when the hook itself exits 0.
func (e *Executor) ProcessExecutionResult(
	result *Result,
	output []byte,
	execErr error,
	filesModified bool,
	start time.Time,
) {
	result.Output = string(output)
	result.Duration = time.Since(start)

	if execErr != nil {
		result.Error = execErr.Error()
		e.processExitCode(result, execErr)

		// Check for timeout
		if e.handleTimeoutError(result, execErr) {
			result.Timeout = true
		} else {
			e.handleExecutionError(result, execErr)
		}
	}

	e.determineHookSuccess(result, filesModified, execErr)
}

// ProcessBatchResults combines the outcomes of a hook's concurrently run
// file batches into a single Result. Unlike ProcessExecutionResult, which
// handles one subprocess, here exit codes combine via bitwise OR (any
// failing batch fails the hook) and outputs are already concatenated in
// completion order by the caller.
func (e *Executor) ProcessBatchResults(
	result *Result,
	combinedOutput string,
	exitCode int,
	timedOut bool,
	filesModified bool,
	start time.Time,
) {
	result.Output = combinedOutput
	result.Duration = time.Since(start)
	result.ExitCode = exitCode
	result.Timeout = timedOut

	switch {
	case timedOut:
		result.Error = fmt.Sprintf("Hook timed out after %v", e.ctx.Timeout)
	case exitCode != 0 && strings.TrimSpace(combinedOutput) == "":
		result.Error = fmt.Sprintf("Command failed with exit code %d", exitCode)
	}

	var batchErr error
	if exitCode != 0 {
		batchErr = fmt.Errorf("hook batch failed with exit code %d", exitCode)
	}
	e.determineHookSuccess(result, filesModified, batchErr)
}

// processExitCode extracts the exit code from an execution error
func (e *Executor) processExitCode(result *Result, execErr error) {
	var exitError *exec.ExitError
	if errors.As(execErr, &exitError) {
		result.ExitCode = exitError.ExitCode()
	} else {
		result.ExitCode = 1
	}
}

// handleTimeoutError checks if the error is a timeout error
func (e *Executor) handleTimeoutError(result *Result, execErr error) bool {
	if errors.Is(execErr, context.DeadlineExceeded) {
		result.Error = fmt.Sprintf("Hook timed out after %v", e.ctx.Timeout)
		return true
	}
	return false
}

// handleExecutionError processes execution errors
func (e *Executor) handleExecutionError(result *Result, execErr error) {
	if e.isExecutableNotFoundError(execErr) {
		result.Error = fmt.Sprintf("Executable not found: %s", execErr.Error())
		return
	}

	var exitError *exec.ExitError
	if !errors.As(execErr, &exitError) {
		// Other execution error
		result.Error = fmt.Sprintf("Execution error: %s", execErr.Error())
		return
	}

	// For hooks that produce meaningful output (like linters), don't override
	// the error with a generic message if we have useful output
	if strings.TrimSpace(result.Output) != "" {
		// Clear the generic error - the output contains the real information
		result.Error = ""
		return
	}

	// No useful output, so the generic error message is helpful
	result.Error = fmt.Sprintf("Command failed with exit code %d", exitError.ExitCode())
}

// isExecutableNotFoundError checks if the error is an executable not found error
func (e *Executor) isExecutableNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return os.IsNotExist(err) || errors.Is(err, exec.ErrNotFound)
}

// determineHookSuccess determines if a hook execution was successful.
// A hook that modified tracked files blocks the commit regardless of its
// exit code, matching the source tool's "files were modified by this hook"
// behavior; everything else falls back to the process exit status.
func (e *Executor) determineHookSuccess(result *Result, filesModified bool, execErr error) {
	if result.Timeout {
		result.Success = false
		return
	}

	if e.isExecutableNotFoundError(execErr) {
		result.Success = false
		return
	}

	if filesModified {
		result.Success = false
		e.addFilesModifiedMessage(result)
		return
	}

	result.Success = execErr == nil
}

// addFilesModifiedMessage adds the "files were modified" message to the output
func (e *Executor) addFilesModifiedMessage(result *Result) {
	// Add the standard message that Python pre-commit shows
	modifiedMessage := "- files were modified by this hook"

	// If there's existing output, add it after the hook details
	if result.Output != "" {
		// Insert the message at the beginning, similar to how Python pre-commit does it
		lines := strings.Split(result.Output, "\n")

		// Find a good place to insert the message (after hook id, duration, etc.)
		insertIndex := 0
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				insertIndex = i
				break
			}
		}

		// Insert the message
		newLines := make([]string, 0, len(lines)+1)
		newLines = append(newLines, lines[:insertIndex]...)
		newLines = append(newLines, modifiedMessage)
		newLines = append(newLines, lines[insertIndex:]...)

		result.Output = strings.Join(newLines, "\n")
	} else {
		result.Output = modifiedMessage
	}
}
