// Package keysym carries the key symbol constants the default bindings
// use and the keyboard mapping loaded from the server.
package keysym

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Symbol constants from the X11 keysym tables.
const (
	XK_space  xproto.Keysym = 0x0020
	XK_comma  xproto.Keysym = 0x002c
	XK_period xproto.Keysym = 0x002e

	XK_1 xproto.Keysym = 0x0031
	XK_2 xproto.Keysym = 0x0032
	XK_3 xproto.Keysym = 0x0033
	XK_4 xproto.Keysym = 0x0034
	XK_5 xproto.Keysym = 0x0035
	XK_6 xproto.Keysym = 0x0036
	XK_7 xproto.Keysym = 0x0037
	XK_8 xproto.Keysym = 0x0038
	XK_9 xproto.Keysym = 0x0039

	XK_c xproto.Keysym = 0x0063
	XK_h xproto.Keysym = 0x0068
	XK_j xproto.Keysym = 0x006a
	XK_k xproto.Keysym = 0x006b
	XK_l xproto.Keysym = 0x006c
	XK_m xproto.Keysym = 0x006d
	XK_q xproto.Keysym = 0x0071
	XK_t xproto.Keysym = 0x0074

	XK_Return xproto.Keysym = 0xff0d
	XK_Tab    xproto.Keysym = 0xff09

	XK_Num_Lock  xproto.Keysym = 0xff7f
	XK_Caps_Lock xproto.Keysym = 0xffe5
)

const (
	loKeycode = 8
	hiKeycode = 255
)

// Keymap maps keycodes to the keysym columns the server reported.
type Keymap [256][]xproto.Keysym

// Load reads the full keyboard mapping from the server.
func Load(x *xgb.Conn) (*Keymap, error) {
	reply, err := xproto.GetKeyboardMapping(x, loKeycode, hiKeycode-loKeycode+1).Reply()
	if err != nil {
		return nil, fmt.Errorf("keysym: get keyboard mapping: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("keysym: empty keyboard mapping")
	}
	var km Keymap
	per := int(reply.KeysymsPerKeycode)
	for i := 0; i <= hiKeycode-loKeycode; i++ {
		km[loKeycode+i] = reply.Keysyms[i*per : (i+1)*per]
	}
	return &km, nil
}

// SymForCode returns the unshifted keysym of a keycode.
func (km *Keymap) SymForCode(code xproto.Keycode) xproto.Keysym {
	syms := km[code]
	if len(syms) == 0 {
		return 0
	}
	return syms[0]
}

// CodesForSym returns every keycode producing the given keysym in any
// column.
func (km *Keymap) CodesForSym(sym xproto.Keysym) []xproto.Keycode {
	var out []xproto.Keycode
	for code := loKeycode; code <= hiKeycode; code++ {
		for _, s := range km[code] {
			if s == sym {
				out = append(out, xproto.Keycode(code))
				break
			}
		}
	}
	return out
}

// ModifierFor returns the modifier bit a keysym is attached to, by
// scanning the server's modifier mapping. Used to locate NumLock.
func ModifierFor(x *xgb.Conn, km *Keymap, sym xproto.Keysym) (uint16, error) {
	reply, err := xproto.GetModifierMapping(x).Reply()
	if err != nil {
		return 0, fmt.Errorf("keysym: get modifier mapping: %w", err)
	}
	per := int(reply.KeycodesPerModifier)
	for mod := 0; mod < 8; mod++ {
		for i := 0; i < per; i++ {
			code := reply.Keycodes[mod*per+i]
			if code == 0 {
				continue
			}
			for _, s := range km[code] {
				if s == sym {
					return 1 << uint(mod), nil
				}
			}
		}
	}
	return 0, nil
}
