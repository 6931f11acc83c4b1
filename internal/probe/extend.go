package probe

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mzg/suntd/internal/config"
	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

// Extend runs each configured shell command and inserts its four
// nsExtendObjects entries (spec.md §4.3 "Extend"). A command that fails to
// spawn aborts only this probe's remaining entries (spec.md §4.5 "Failure
// semantics"); a command that runs and exits non-zero is not an error —
// its exit code is itself the nsExtendResult value.
func Extend(doc *config.Document) Func {
	return func(s *store.Store) error {
		if doc == nil {
			return nil
		}

		for name, entry := range doc.Extend {
			if entry.Cmd == "" {
				return fmt.Errorf("extend entry %q: no command given", name)
			}

			cmd := exec.Command(entry.Cmd, entry.Args...)
			var stdout bytes.Buffer
			cmd.Stdout = &stdout

			if err := cmd.Start(); err != nil {
				return fmt.Errorf("extend entry %q: could not execute command: %w", name, err)
			}
			exitCode := 0
			if err := cmd.Wait(); err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					exitCode = exitErr.ExitCode()
				} else {
					return fmt.Errorf("extend entry %q: command failed: %w", name, err)
				}
			}

			output := stdout.String()
			lines := strings.Split(output, "\n")
			firstLine := ""
			numLines := 0
			if output != "" {
				firstLine = lines[0]
				numLines = len(lines)
				if strings.HasSuffix(output, "\n") {
					numLines--
				}
			}

			namepart := fmt.Sprintf("%d.%s", len(name), oid.AsciifyPart(name))

			s.Insert(oid.Join(NsExtendObjects, "1", namepart), value.NewOctetString(firstLine))
			s.Insert(oid.Join(NsExtendObjects, "2", namepart), value.NewOctetString(strings.TrimRight(output, " \t\r\n")))
			s.Insert(oid.Join(NsExtendObjects, "3", namepart), value.NewInteger(int64(numLines)))
			s.Insert(oid.Join(NsExtendObjects, "4", namepart), value.NewInteger(int64(exitCode)))
		}
		return nil
	}
}
