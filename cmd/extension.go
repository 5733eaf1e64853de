package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// ExtensionPrefix is the prefix of the external commands run for unknown
// subcommands.
const ExtensionPrefix = "lena-"

// RunExtension attempts to find and execute an external lena-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		verbosef("external command %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global flags as environment variables.
func extensionEnv() []string {
	dir := config.DataDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	} else {
		log.Printf("warning, cannot resolve data folder %q: %v", dir, err)
	}
	return []string{
		"LENA_DATA_DIR=" + dir,
		"LENA_STORE=" + config.Store,
		"LENA_CURRENCY=" + config.Currency,
		"LENA_STYLE=" + config.Style,
		"LENA_VERBOSE=" + strconv.FormatBool(config.Verbose),
	}
}
