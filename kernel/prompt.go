package kernel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/smallnest/kernelplay/plugin"
)

// File names inside a prompt function directory.
const (
	PromptFileName = "skprompt.txt"
	ConfigFileName = "config.json"
)

// DefaultServiceID keys the execution settings used when a prompt config
// lists settings for several services.
const DefaultServiceID = "default"

// InputVariable describes one template variable of a prompt function.
type InputVariable struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Required    bool   `json:"is_required,omitempty"`
}

// PromptConfig is the metadata of a prompt function, as stored in config.json.
type PromptConfig struct {
	Name              string                       `json:"name,omitempty"`
	Description       string                       `json:"description"`
	InputVariables    []InputVariable              `json:"input_variables,omitempty"`
	ExecutionSettings map[string]ExecutionSettings `json:"execution_settings,omitempty"`
}

func (c PromptConfig) settings() ExecutionSettings {
	if s, ok := c.ExecutionSettings[DefaultServiceID]; ok {
		return s
	}
	for _, s := range c.ExecutionSettings {
		return s
	}
	return ExecutionSettings{}
}

// CreateFunctionFromPrompt turns a template into a function that renders it
// and returns the model's answer. Without declared input variables every
// $variable the template reads becomes an optional parameter. settings take
// precedence over the ones in cfg.
func (k *Kernel) CreateFunctionFromPrompt(template string, cfg PromptConfig, settings ...Setting) *plugin.Function {
	name := cfg.Name
	if name == "" {
		name = "func" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	var params []plugin.Parameter
	if len(cfg.InputVariables) > 0 {
		for _, v := range cfg.InputVariables {
			params = append(params, plugin.Parameter{
				Name:        v.Name,
				Description: v.Description,
				Required:    v.Required,
				Default:     v.Default,
			})
		}
	} else {
		for _, v := range templateVariables(template) {
			params = append(params, plugin.Parameter{Name: v})
		}
	}

	execSettings := k.defaults
	if s := cfg.settings(); s.MaxTokens > 0 || s.Temperature != nil || s.TopP != nil {
		execSettings.MaxTokens = s.MaxTokens
		execSettings.Temperature = s.Temperature
		execSettings.TopP = s.TopP
	}
	execSettings = execSettings.apply(settings...)

	return plugin.NewFunction(name, cfg.Description, func(ctx context.Context, args plugin.Arguments) (string, error) {
		prompt, err := k.RenderPrompt(ctx, template, args)
		if err != nil {
			return "", err
		}
		return k.complete(ctx, prompt, execSettings)
	}, params...)
}

// CreatePluginFromPromptFS builds a plugin from a tree of prompt functions.
// Every top-level directory of fsys holding skprompt.txt becomes a function
// named after the directory; config.json next to it is optional.
func (k *Kernel) CreatePluginFromPromptFS(fsys fs.FS, pluginName string) (*plugin.Plugin, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read prompt directory: %w", err)
	}

	p := plugin.New(pluginName, "")
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := entry.Name()

		template, err := fs.ReadFile(fsys, path.Join(dir, PromptFileName))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s/%s: %w", dir, PromptFileName, err)
		}

		var cfg PromptConfig
		raw, err := fs.ReadFile(fsys, path.Join(dir, ConfigFileName))
		switch {
		case err == nil:
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse %s/%s: %w", dir, ConfigFileName, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s/%s: %w", dir, ConfigFileName, err)
		}
		cfg.Name = dir

		p.Add(k.CreateFunctionFromPrompt(string(template), cfg))
	}

	if len(p.Functions()) == 0 {
		return nil, fmt.Errorf("no prompt functions found for plugin %s", pluginName)
	}
	return p, nil
}

// ImportPromptFS creates a plugin from fsys and registers it.
func (k *Kernel) ImportPromptFS(fsys fs.FS, pluginName string) (*plugin.Plugin, error) {
	p, err := k.CreatePluginFromPromptFS(fsys, pluginName)
	if err != nil {
		return nil, err
	}
	if err := k.AddPlugin(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ImportPromptDirectory loads the prompt functions under dir and registers
// them. An empty pluginName uses the directory's base name.
func (k *Kernel) ImportPromptDirectory(dir, pluginName string) (*plugin.Plugin, error) {
	if pluginName == "" {
		pluginName = filepath.Base(filepath.Clean(dir))
	}
	return k.ImportPromptFS(os.DirFS(dir), pluginName)
}
