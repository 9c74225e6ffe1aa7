package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/doccompile/internal/config"
	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	"git.home.luguber.info/inful/doccompile/internal/workspace"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force    bool `help:"Overwrite existing configuration file"`
	Scaffold bool `help:"Also create src/index.md and an empty variable dictionary when missing"`
}

var scaffoldFiles = map[string]string{
	filepath.Join("src", "index.md"): "# @var:TITLE@\n\n@toc@\n\n## Getting started\n",
	config.DefaultDictionary:         "{\n  \"TITLE\": \"Documentation\"\n}\n",
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	project := cwd
	if root.Root != "" {
		r, err := workspace.Resolve(root.Root, cwd)
		if err != nil {
			return err
		}
		project = r.Path
	}

	cfgPath := root.Config
	if cfgPath == "" {
		cfgPath = filepath.Join(project, config.DefaultFileName)
	}
	if err := config.Init(cfgPath, i.Force); err != nil {
		return err
	}
	printf(g, "Wrote configuration to %s\n", cfgPath)

	if !i.Scaffold {
		return nil
	}
	for rel, content := range scaffoldFiles {
		path := filepath.Join(project, rel)
		created, err := writeIfMissing(path, content)
		if err != nil {
			return err
		}
		if created {
			printf(g, "Created %s\n", path)
		}
	}
	return nil
}

func writeIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to inspect path").
			WithPath(path).
			Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create directory").
			WithPath(filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write file").
			WithPath(path).
			Build()
	}
	return true, nil
}

func printf(g *Global, format string, args ...any) {
	if g != nil && g.Stdout != nil {
		_, _ = fmt.Fprintf(g.Stdout, format, args...)
	}
}
