// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

import (
	"errors"
	"testing"

	"github.com/z5labs/envfile/symbol"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("will return the zero value", func(t *testing.T) {
		t.Run("if the variable is missing", func(t *testing.T) {
			n, err := Get(Map{}, "MISSING", Int)
			require.NoError(t, err)
			require.Zero(t, n)
		})

		t.Run("if the variable is empty", func(t *testing.T) {
			b, err := Get(Map{"FLAG": ""}, "FLAG", Bool)
			require.NoError(t, err)
			require.False(t, b)
		})
	})

	t.Run("will convert the value", func(t *testing.T) {
		t.Run("if it is non-empty and valid", func(t *testing.T) {
			n, err := Get(Map{"PORT": "8080"}, "PORT", Int)
			require.NoError(t, err)
			require.Equal(t, int64(8080), n)
		})
	})

	t.Run("will return a ConversionError", func(t *testing.T) {
		t.Run("if the value is non-empty and invalid", func(t *testing.T) {
			_, err := Get(Map{"PORT": "notanumber"}, "PORT", Int)

			var cerr ConversionError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "PORT", cerr.Var)
			require.Equal(t, "int64", cerr.Type)
		})
	})
}

func TestGetNullable(t *testing.T) {
	t.Run("will return an unset Value", func(t *testing.T) {
		t.Run("if the variable is missing", func(t *testing.T) {
			v, err := GetNullable(Map{}, "MISSING", Int)
			require.NoError(t, err)

			_, set := v.Value()
			require.False(t, set)
		})
	})

	t.Run("will return a set Value", func(t *testing.T) {
		t.Run("if the variable converts successfully", func(t *testing.T) {
			v, err := GetNullable(Map{"PORT": "8080"}, "PORT", Int)
			require.NoError(t, err)

			n, set := v.Value()
			require.True(t, set)
			require.Equal(t, int64(8080), n)
		})
	})

	t.Run("will return a ConversionError", func(t *testing.T) {
		t.Run("if the value is non-empty and invalid", func(t *testing.T) {
			_, err := GetNullable(Map{"PORT": "notanumber"}, "PORT", Int)

			var cerr ConversionError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "PORT", cerr.Var)
		})
	})
}

func TestGetStrict(t *testing.T) {
	t.Run("will return a ConversionError wrapping ErrEmpty", func(t *testing.T) {
		t.Run("if the variable is missing", func(t *testing.T) {
			_, err := GetStrict(Map{}, "MISSING", Int)

			var cerr ConversionError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "MISSING", cerr.Var)
			require.ErrorIs(t, err, ErrEmpty)
		})

		t.Run("if the variable is empty", func(t *testing.T) {
			_, err := GetStrict(Map{"HOST": ""}, "HOST", String)
			require.ErrorIs(t, err, ErrEmpty)
		})
	})

	t.Run("will convert the value", func(t *testing.T) {
		t.Run("if it is non-empty and valid", func(t *testing.T) {
			s, err := GetStrict(Map{"HOST": "localhost"}, "HOST", String)
			require.NoError(t, err)
			require.Equal(t, "localhost", s)
		})
	})
}

func TestGet_CustomConversion(t *testing.T) {
	t.Run("will attach the variable name", func(t *testing.T) {
		t.Run("if the conversion fails without knowing it", func(t *testing.T) {
			convErr := errors.New("not a valid level")
			conv := func(s string) (int, error) {
				return 0, convErr
			}

			_, err := Get(Map{"LEVEL": "chatty"}, "LEVEL", conv)

			var cerr ConversionError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "LEVEL", cerr.Var)
			require.Equal(t, "int", cerr.Type)
			require.ErrorIs(t, err, convErr)
		})
	})
}

func TestBool(t *testing.T) {
	testCases := []struct {
		name      string
		value     string
		expected  bool
		expectErr bool
	}{
		{name: "true", value: "true", expected: true},
		{name: "false", value: "false", expected: false},
		{name: "mixed case true", value: "True", expected: true},
		{name: "upper case false", value: "FALSE", expected: false},
		{name: "one is not a boolean", value: "1", expectErr: true},
		{name: "yes is not a boolean", value: "yes", expectErr: true},
		{name: "arbitrary text is not coerced to false", value: "abc", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Bool(tc.value)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, b)
		})
	}
}

func TestInt(t *testing.T) {
	t.Run("will not truncate trailing garbage", func(t *testing.T) {
		_, err := Int("12abc")
		require.Error(t, err)
	})

	t.Run("will parse negative numbers", func(t *testing.T) {
		n, err := Int("-42")
		require.NoError(t, err)
		require.Equal(t, int64(-42), n)
	})
}

func TestFloat(t *testing.T) {
	t.Run("will parse decimal literals", func(t *testing.T) {
		f, err := Float("3.14")
		require.NoError(t, err)
		require.InDelta(t, 3.14, f, 1e-9)
	})

	t.Run("will not truncate trailing garbage", func(t *testing.T) {
		_, err := Float("3.14abc")
		require.Error(t, err)
	})
}

func TestCharlist(t *testing.T) {
	t.Run("will return the zero sequence", func(t *testing.T) {
		t.Run("if the variable is missing", func(t *testing.T) {
			cs, err := Get(Map{}, "MISSING", Charlist)
			require.NoError(t, err)
			require.Empty(t, cs)
		})
	})

	t.Run("will preserve multibyte characters", func(t *testing.T) {
		cs, err := Charlist("héllo")
		require.NoError(t, err)
		require.Equal(t, Chars("héllo"), cs)
		require.Len(t, cs, 5)
	})
}

func TestAtom(t *testing.T) {
	t.Run("will return the empty name", func(t *testing.T) {
		t.Run("if the variable is missing", func(t *testing.T) {
			n, err := Get(Map{}, "MISSING", Atom)
			require.NoError(t, err)
			require.Equal(t, symbol.Name(""), n)
		})
	})

	t.Run("will tag any non-empty value", func(t *testing.T) {
		n, err := Get(Map{"MODE": "active"}, "MODE", Atom)
		require.NoError(t, err)
		require.Equal(t, symbol.Name("active"), n)
	})
}

func TestExistingAtom(t *testing.T) {
	t.Run("will convert the value", func(t *testing.T) {
		t.Run("if the name is registered", func(t *testing.T) {
			reg := symbol.NewRegistry()
			reg.Register("active", "passive")

			n, err := Get(Map{"MODE": "active"}, "MODE", ExistingAtom(reg))
			require.NoError(t, err)
			require.Equal(t, symbol.Name("active"), n)
		})
	})

	t.Run("will return a ConversionError", func(t *testing.T) {
		t.Run("if the name is not registered", func(t *testing.T) {
			reg := symbol.NewRegistry()

			_, err := Get(Map{"MODE": "active"}, "MODE", ExistingAtom(reg))

			var cerr ConversionError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "MODE", cerr.Var)
		})
	})
}

func TestExistingModule(t *testing.T) {
	t.Run("will return Root", func(t *testing.T) {
		t.Run("if the variable is missing", func(t *testing.T) {
			reg := symbol.NewRegistry()

			m, err := Get(Map{}, "MISSING", ExistingModule(reg))
			require.NoError(t, err)
			require.Equal(t, symbol.Root, m)
		})
	})

	t.Run("will convert the value", func(t *testing.T) {
		t.Run("if the module is registered", func(t *testing.T) {
			reg := symbol.NewRegistry()
			reg.RegisterModule("http.Handler")

			m, err := Get(Map{"HANDLER": "http.Handler"}, "HANDLER", ExistingModule(reg))
			require.NoError(t, err)
			require.Equal(t, symbol.Module("http.Handler"), m)
		})
	})

	t.Run("will return a ConversionError", func(t *testing.T) {
		t.Run("if the module is not registered", func(t *testing.T) {
			reg := symbol.NewRegistry()

			_, err := Get(Map{"HANDLER": "http.Handler"}, "HANDLER", ExistingModule(reg))

			var cerr ConversionError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "HANDLER", cerr.Var)
		})
	})
}
