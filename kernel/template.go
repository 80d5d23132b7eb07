package kernel

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/smallnest/kernelplay/plugin"
)

// ErrTemplateSyntax is returned for a block that cannot be parsed.
var ErrTemplateSyntax = errors.New("template syntax error")

var blockPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)

// RenderPrompt expands the blocks of a prompt template:
//
//	{{$name}}                       value of argument name, "" when unset
//	{{Plugin.Function}}             result of the function, called with args
//	{{Plugin.Function $name}}       same, with args["input"] = args[name]
//	{{Plugin.Function 'text'}}      same, with args["input"] = "text"
//	{{Plugin.Function key=$name}}   named arguments, values as above
//
// The plugin prefix may be omitted when the function name is unique.
func (k *Kernel) RenderPrompt(ctx context.Context, template string, args plugin.Arguments) (string, error) {
	if args == nil {
		args = plugin.Arguments{}
	}

	var sb strings.Builder
	last := 0
	for _, loc := range blockPattern.FindAllStringSubmatchIndex(template, -1) {
		sb.WriteString(template[last:loc[0]])
		body := strings.TrimSpace(template[loc[2]:loc[3]])
		out, err := k.renderBlock(ctx, body, args)
		if err != nil {
			return "", fmt.Errorf("render {{%s}}: %w", body, err)
		}
		sb.WriteString(out)
		last = loc[1]
	}
	sb.WriteString(template[last:])
	return sb.String(), nil
}

func (k *Kernel) renderBlock(ctx context.Context, body string, args plugin.Arguments) (string, error) {
	tokens, err := tokenize(body)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}

	head := tokens[0]
	switch {
	case strings.HasPrefix(head, "$"):
		if len(tokens) > 1 {
			return "", fmt.Errorf("%w: unexpected %q after variable", ErrTemplateSyntax, tokens[1])
		}
		return args.String(head[1:]), nil
	case isQuoted(head):
		if len(tokens) > 1 {
			return "", fmt.Errorf("%w: unexpected %q after literal", ErrTemplateSyntax, tokens[1])
		}
		return head[1 : len(head)-1], nil
	}

	pluginName, functionName, ok := strings.Cut(head, ".")
	if !ok {
		pluginName, functionName = "", head
	}
	fn, err := k.plugins.Function(pluginName, functionName)
	if err != nil {
		return "", err
	}

	call := args.Clone()
	for _, tok := range tokens[1:] {
		if name, raw, ok := namedArgument(tok); ok {
			call[name] = argumentValue(raw, args)
			continue
		}
		call["input"] = argumentValue(tok, args)
	}

	k.logger.Debug("template calls %s", head)
	return fn.Invoke(ctx, call)
}

func namedArgument(tok string) (string, string, bool) {
	if tok == "" || tok[0] == '$' || tok[0] == '\'' || tok[0] == '"' {
		return "", "", false
	}
	name, value, ok := strings.Cut(tok, "=")
	if !ok || name == "" {
		return "", "", false
	}
	return name, value, true
}

func argumentValue(raw string, args plugin.Arguments) any {
	switch {
	case strings.HasPrefix(raw, "$"):
		return args[raw[1:]]
	case isQuoted(raw):
		return raw[1 : len(raw)-1]
	default:
		return raw
	}
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0]
}

// tokenize splits a block on whitespace, keeping quoted text together.
func tokenize(body string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	var quote rune

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range body {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote", ErrTemplateSyntax)
	}
	flush()
	return tokens, nil
}

// templateVariables lists the $variables a template reads, in first-use order.
func templateVariables(template string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range blockPattern.FindAllStringSubmatch(template, -1) {
		tokens, err := tokenize(m[1])
		if err != nil {
			continue
		}
		for _, tok := range tokens {
			if _, raw, ok := namedArgument(tok); ok {
				tok = raw
			}
			if !strings.HasPrefix(tok, "$") || len(tok) == 1 {
				continue
			}
			if name := tok[1:]; !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
