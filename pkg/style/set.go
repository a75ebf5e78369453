package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Set assigns a single property given in CSS-like text form, e.g.
// Set(&s, "margin-left", "10px") or Set(&s, "align-items", "center").
// Optional alignment properties are disabled with "none" or "unset".
// On error s is left unchanged.
func Set(s *Style, property, value string) error {
	c := s.Clone()
	if err := set(&c, strings.ToLower(strings.TrimSpace(property)), strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("style %s: %w", property, err)
	}
	*s = c
	return nil
}

// ApplyDeclarations applies a CSS declaration list such as
// "display: flex; margin: 4px 8px". Either every declaration applies or
// none does.
func ApplyDeclarations(s *Style, text string) error {
	// the parser drops the value of a final declaration lacking its ';'
	if t := strings.TrimSpace(text); t != "" && !strings.HasSuffix(t, ";") {
		text = t + ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return fmt.Errorf("parsing declarations: %w", err)
	}
	c := s.Clone()
	for _, d := range decls {
		if strings.TrimSpace(d.Value) == "" {
			return fmt.Errorf("style %s: missing value", d.Property)
		}
		if err := Set(&c, d.Property, d.Value); err != nil {
			return err
		}
	}
	*s = c
	return nil
}

func set(s *Style, prop, val string) error {
	var err error
	switch prop {
	case "display":
		s.Display, err = ParseDisplay(val)
	case "box-sizing":
		s.BoxSizing, err = ParseBoxSizing(val)
	case "overflow":
		parts := strings.Fields(val)
		if len(parts) == 0 || len(parts) > 2 {
			return fmt.Errorf("expected 1 or 2 values, got %q", val)
		}
		if s.Overflow.X, err = ParseOverflow(parts[0]); err != nil {
			return err
		}
		s.Overflow.Y = s.Overflow.X
		if len(parts) == 2 {
			s.Overflow.Y, err = ParseOverflow(parts[1])
		}
	case "overflow-x":
		s.Overflow.X, err = ParseOverflow(val)
	case "overflow-y":
		s.Overflow.Y, err = ParseOverflow(val)
	case "scrollbar-width":
		s.ScrollbarWidth, err = parseLengthOnly(val)
	case "position":
		s.Position, err = ParsePosition(val)
	case "inset":
		err = setEdges(val, parseLPA, &s.Inset)
	case "left", "inset-left":
		s.Inset.Left, err = parseLPA(val)
	case "right", "inset-right":
		s.Inset.Right, err = parseLPA(val)
	case "top", "inset-top":
		s.Inset.Top, err = parseLPA(val)
	case "bottom", "inset-bottom":
		s.Inset.Bottom, err = parseLPA(val)
	case "width":
		s.Size.Width, err = parseDimension(val)
	case "height":
		s.Size.Height, err = parseDimension(val)
	case "min-width":
		s.MinSize.Width, err = parseDimension(val)
	case "min-height":
		s.MinSize.Height, err = parseDimension(val)
	case "max-width":
		s.MaxSize.Width, err = parseDimension(val)
	case "max-height":
		s.MaxSize.Height, err = parseDimension(val)
	case "aspect-ratio":
		s.AspectRatio, err = parseAspectRatio(val)
	case "margin":
		err = setEdges(val, parseLPA, &s.Margin)
	case "margin-left":
		s.Margin.Left, err = parseLPA(val)
	case "margin-right":
		s.Margin.Right, err = parseLPA(val)
	case "margin-top":
		s.Margin.Top, err = parseLPA(val)
	case "margin-bottom":
		s.Margin.Bottom, err = parseLPA(val)
	case "padding":
		err = setEdges(val, parseLP, &s.Padding)
	case "padding-left":
		s.Padding.Left, err = parseLP(val)
	case "padding-right":
		s.Padding.Right, err = parseLP(val)
	case "padding-top":
		s.Padding.Top, err = parseLP(val)
	case "padding-bottom":
		s.Padding.Bottom, err = parseLP(val)
	case "border", "border-width":
		err = setEdges(val, parseLP, &s.Border)
	case "border-left", "border-left-width":
		s.Border.Left, err = parseLP(val)
	case "border-right", "border-right-width":
		s.Border.Right, err = parseLP(val)
	case "border-top", "border-top-width":
		s.Border.Top, err = parseLP(val)
	case "border-bottom", "border-bottom-width":
		s.Border.Bottom, err = parseLP(val)
	case "align-items":
		s.AlignItems, err = parseOptional(val, ParseAlignItems)
	case "align-self":
		s.AlignSelf, err = parseOptional(val, ParseAlignItems)
	case "justify-items":
		s.JustifyItems, err = parseOptional(val, ParseAlignItems)
	case "justify-self":
		s.JustifySelf, err = parseOptional(val, ParseAlignItems)
	case "align-content":
		s.AlignContent, err = parseOptional(val, ParseAlignContent)
	case "justify-content":
		s.JustifyContent, err = parseOptional(val, ParseAlignContent)
	case "gap":
		parts := strings.Fields(val)
		if len(parts) == 0 || len(parts) > 2 {
			return fmt.Errorf("expected 1 or 2 values, got %q", val)
		}
		if s.Gap.Height, err = parseLP(parts[0]); err != nil {
			return err
		}
		s.Gap.Width = s.Gap.Height
		if len(parts) == 2 {
			s.Gap.Width, err = parseLP(parts[1])
		}
	case "row-gap":
		s.Gap.Height, err = parseLP(val)
	case "column-gap":
		s.Gap.Width, err = parseLP(val)
	case "text-align":
		s.TextAlign, err = ParseTextAlign(val)
	case "flex-direction":
		s.FlexDirection, err = ParseFlexDirection(val)
	case "flex-wrap":
		s.FlexWrap, err = ParseFlexWrap(val)
	case "flex-basis":
		s.FlexBasis, err = parseDimension(val)
	case "flex-grow":
		s.FlexGrow, err = parseNonNegative(val)
	case "flex-shrink":
		s.FlexShrink, err = parseNonNegative(val)
	default:
		return fmt.Errorf("unknown property")
	}
	return err
}

// parseNumber parses a length value (e.g., "100px" or "100") or a
// percentage ("50%"). isPercent reports which one was found.
func parseNumber(val string) (v float64, isPercent bool, err error) {
	val = strings.TrimSpace(val)
	if strings.HasSuffix(val, "%") {
		isPercent = true
		val = strings.TrimSuffix(val, "%")
	} else {
		val = strings.TrimSuffix(val, "px")
	}
	v, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid length %q", val)
	}
	return v, isPercent, nil
}

func parseLP(val string) (LengthPercentage, error) {
	v, pct, err := parseNumber(val)
	if err != nil {
		return LengthPercentage{}, err
	}
	if pct {
		return Percent(v), nil
	}
	return Length(v), nil
}

func parseLPA(val string) (LengthPercentageAuto, error) {
	if strings.EqualFold(strings.TrimSpace(val), "auto") {
		return Auto(), nil
	}
	v, pct, err := parseNumber(val)
	if err != nil {
		return LengthPercentageAuto{}, err
	}
	if pct {
		return PercentAuto(v), nil
	}
	return LengthAuto(v), nil
}

func parseDimension(val string) (Dimension, error) {
	if strings.EqualFold(strings.TrimSpace(val), "auto") {
		return DimAuto(), nil
	}
	v, pct, err := parseNumber(val)
	if err != nil {
		return Dimension{}, err
	}
	if pct {
		return DimPercent(v), nil
	}
	return DimLength(v), nil
}

func parseLengthOnly(val string) (float64, error) {
	v, pct, err := parseNumber(val)
	if err == nil && pct {
		err = fmt.Errorf("percentage not allowed: %q", val)
	}
	return v, err
}

func parseNonNegative(val string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", val)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %q", val)
	}
	return v, nil
}

// parseAspectRatio accepts "none", "auto", a single number or "w / h".
func parseAspectRatio(val string) (*float64, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "none", "auto", "unset":
		return nil, nil
	}
	num, den := val, "1"
	if i := strings.Index(val, "/"); i >= 0 {
		num, den = val[:i], val[i+1:]
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ratio %q", val)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || d == 0 || n <= 0 || d < 0 {
		return nil, fmt.Errorf("invalid ratio %q", val)
	}
	return Some(n / d), nil
}

func parseOptional[T any](val string, parse func(string) (T, error)) (*T, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "none", "unset", "normal", "auto":
		return nil, nil
	}
	v, err := parse(val)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// setEdges expands a 1-4 value shorthand in top, right, bottom, left order.
func setEdges[T any](val string, parse func(string) (T, error), r *Rect[T]) error {
	parts := strings.Fields(val)
	vals := make([]T, len(parts))
	for i, p := range parts {
		v, err := parse(p)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		*r = UniformRect(vals[0])
	case 2:
		*r = Rect[T]{Top: vals[0], Bottom: vals[0], Right: vals[1], Left: vals[1]}
	case 3:
		*r = Rect[T]{Top: vals[0], Right: vals[1], Left: vals[1], Bottom: vals[2]}
	case 4:
		*r = Rect[T]{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	default:
		return fmt.Errorf("expected 1 to 4 values, got %q", val)
	}
	return nil
}
