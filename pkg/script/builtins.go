package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/quartetsim/quartet/pkg/device"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms config script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: flux-line -> flux_line
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpResonators carries a resonator row request from (resonators ...)
// into a device option list.
type sexpResonators struct {
	count int
}

func (r *sexpResonators) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(resonators :count %d)", r.count)
}
func (r *sexpResonators) Type() *zygo.RegisteredType { return nil }

// sexpFluxLine carries a flux-line request from (flux-line ...).
type sexpFluxLine struct {
	variant string
}

func (f *sexpFluxLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(flux-line :variant :%s)", f.variant)
}
func (f *sexpFluxLine) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_curve) and plain strings ("curve").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// ---------------------------------------------------------------------------
// Device option handling
// ---------------------------------------------------------------------------

// deviceOptions lists the keywords (device ...) and (default-device ...)
// accept. Unknown options are errors rather than silently dropped, so a
// typo cannot quietly lose a device element.
var deviceOptions = map[string]bool{
	"housing":           true,
	"ground-plane":      true,
	"transmission-line": true,
	"resonators":        true,
	"flux-lines":        true,
	"qubit-elements":    true,
}

// applyDeviceArgs applies keyword options onto a base configuration.
// fname is the user-facing builtin name used in error messages.
func applyDeviceArgs(fname string, base device.Config, args []zygo.Sexp) (*device.Config, error) {
	pa := parseArgs(args)
	if len(pa.positional) > 0 {
		return nil, fmt.Errorf("%s: unexpected positional argument %s",
			fname, pa.positional[0].SexpString(nil))
	}
	for key := range pa.kw {
		if !deviceOptions[key] {
			return nil, fmt.Errorf("%s: unknown option :%s", fname, key)
		}
	}

	cfg := base
	if v, ok := pa.kw["housing"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: housing: %w", fname, err)
		}
		cfg.UseQubitHousing = b
	}
	if v, ok := pa.kw["ground-plane"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: ground-plane: %w", fname, err)
		}
		cfg.UseGroundPlane = b
	}
	if v, ok := pa.kw["transmission-line"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: transmission-line: %w", fname, err)
		}
		cfg.UseTransmissionLine = b
	}
	if v, ok := pa.kw["qubit-elements"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: qubit-elements: %w", fname, err)
		}
		cfg.UseQubitElements = b
	}
	if v, ok := pa.kw["resonators"]; ok {
		switch rv := v.(type) {
		case *zygo.SexpBool:
			cfg.UseResonatorAssembly = rv.Val
			if rv.Val && cfg.ResonatorCount == 0 {
				cfg.ResonatorCount = device.DefaultConfig().ResonatorCount
			}
		case *sexpResonators:
			cfg.UseResonatorAssembly = true
			cfg.ResonatorCount = rv.count
		default:
			return nil, fmt.Errorf("%s: resonators: expected true, false, or (resonators ...), got %T",
				fname, v)
		}
	}
	if v, ok := pa.kw["flux-lines"]; ok {
		switch fv := v.(type) {
		case *zygo.SexpBool:
			cfg.UseFluxLines = fv.Val
		case *sexpFluxLine:
			cfg.UseFluxLines = true
			cfg.FluxLineVariant = fv.variant
		default:
			return nil, fmt.Errorf("%s: flux-lines: expected true, false, or (flux-line ...), got %T",
				fname, v)
		}
	}
	return &cfg, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// program collects what the script declares. The last (device ...) or
// (default-device ...) call wins, so scripts can branch on locals and
// settle on one configuration.
type program struct {
	cfg *device.Config
}

// registerBuiltins installs the config DSL builtins into a zygomys
// environment. The builtins write into the provided program as a side
// effect of evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, p *program) {

	// -----------------------------------------------------------------------
	// (device :ground-plane true :resonators (resonators :count 4))
	//
	// Builds a configuration from scratch; omitted elements stay off.
	// -----------------------------------------------------------------------
	env.AddFunction("device", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		cfg, err := applyDeviceArgs("device", device.Config{}, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		p.cfg = cfg
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (default-device :housing false)
	//
	// The full four-qubit device with optional overrides.
	//
	// Note: registered as "default_device" because zygomys does not
	// support hyphens in identifiers. The preprocessor converts
	// default-device to default_device in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("default_device", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		cfg, err := applyDeviceArgs("default-device", device.DefaultConfig(), args)
		if err != nil {
			return zygo.SexpNull, err
		}
		p.cfg = cfg
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (resonators :count 4)
	// -----------------------------------------------------------------------
	env.AddFunction("resonators", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("resonators: unexpected positional argument %s",
				pa.positional[0].SexpString(nil))
		}
		for key := range pa.kw {
			if key != "count" {
				return zygo.SexpNull, fmt.Errorf("resonators: unknown option :%s", key)
			}
		}

		count := device.DefaultConfig().ResonatorCount
		if v, ok := pa.kw["count"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("resonators: count: %w", err)
			}
			if n < 0 {
				return zygo.SexpNull, fmt.Errorf("resonators: count %d is negative", n)
			}
			count = n
		}
		return &sexpResonators{count: count}, nil
	})

	// -----------------------------------------------------------------------
	// (flux-line :variant :straight)
	//
	// Registered as "flux_line"; see the default-device note above.
	// -----------------------------------------------------------------------
	env.AddFunction("flux_line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("flux-line: unexpected positional argument %s",
				pa.positional[0].SexpString(nil))
		}
		for key := range pa.kw {
			if key != "variant" {
				return zygo.SexpNull, fmt.Errorf("flux-line: unknown option :%s", key)
			}
		}

		variant := device.FluxVariantCurve
		if v, ok := pa.kw["variant"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("flux-line: variant: %w", err)
			}
			switch s {
			case device.FluxVariantCurve, device.FluxVariantStraight, device.FluxVariantCorner:
				variant = s
			default:
				return zygo.SexpNull, fmt.Errorf("flux-line: unknown variant %q", s)
			}
		}
		return &sexpFluxLine{variant: variant}, nil
	})
}
