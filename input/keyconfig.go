package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeyNames indexes tcell key names case-insensitively ("up", "esc", "ctrl-c")
var specialKeyNames = func() map[string]tcell.Key {
	names := make(map[string]tcell.Key, len(tcell.KeyNames)+1)
	for k, name := range tcell.KeyNames {
		names[strings.ToLower(name)] = k
	}
	names["escape"] = tcell.KeyEscape
	return names
}()

// keymapFile is the on-disk shape of a keymap
type keymapFile struct {
	Keys  map[string]string `toml:"keys"`
	Runes map[string]string `toml:"runes"`
}

// LoadKeyConfig parses TOML keymap data and merges it over the defaults
//
//	[keys]
//	Esc = "quit"
//	[runes]
//	w = "up"
//	space = "none"
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var f keymapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return ParseBindings(f.Keys, f.Runes)
}

// ParseBindings builds a key table from name → action maps over the defaults
// Binding a key to "none" removes it
func ParseBindings(special, runes map[string]string) (*KeyTable, error) {
	override := &KeyTable{
		SpecialKeys: make(map[tcell.Key]Action, len(special)),
		Runes:       make(map[rune]Action, len(runes)),
	}

	for keyStr, actionName := range special {
		k, ok := specialKeyNames[strings.ToLower(strings.TrimSpace(keyStr))]
		if !ok {
			return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
		}
		a, err := ParseAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}
		override.SpecialKeys[k] = a
	}

	for keyStr, actionName := range runes {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
		}
		a, err := ParseAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
		}
		override.Runes[r] = a
	}

	return MergeKeyTable(DefaultKeyTable(), override), nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// MergeKeyTable returns a new KeyTable with base values overridden
// Override entries with ActionNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	mergeMap(result.SpecialKeys, override.SpecialKeys)
	mergeMap(result.Runes, override.Runes)
	return result
}

func mergeMap[K comparable](base, override map[K]Action) {
	for k, v := range override {
		if v == ActionNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
