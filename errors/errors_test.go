package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  New(PhaseDecode, KindInvalidData).Build(),
			want: "[decode] invalid_data",
		},
		{
			name: "with entity",
			err:  New(PhaseResolve, KindNotFound).Entity("com/example/Foo").Build(),
			want: "[resolve] not_found in com/example/Foo",
		},
		{
			name: "with path and detail",
			err: New(PhaseDecode, KindOutOfBounds).
				Entity("com/example/Foo").
				Path("functions", "returnType").
				Detail("index %d", 9).
				Build(),
			want: "[decode] out_of_bounds in com/example/Foo at functions.returnType: index 9",
		},
		{
			name: "with cause",
			err: New(PhaseHeader, KindInvalidData).
				Cause(fmt.Errorf("unexpected EOF")).
				Build(),
			want: "[header] invalid_data (caused by: unexpected EOF)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := NotFound("com/example/Foo")

	if !stderrors.Is(err, &Error{Phase: PhaseResolve, Kind: KindNotFound}) {
		t.Error("Is should match on phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseDecode, Kind: KindNotFound}) {
		t.Error("Is should not match a different phase")
	}
	if stderrors.Is(err, stderrors.New("plain")) {
		t.Error("Is should not match a plain error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("short read")
	err := Malformed("com/example/Foo", cause)

	if !stderrors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if got := stderrors.Unwrap(err); got != cause {
		t.Errorf("Unwrap: got %v", got)
	}
}

type version struct{ major, minor int }

func (v version) String() string { return fmt.Sprintf("%d.%d", v.major, v.minor) }

func TestConstructors(t *testing.T) {
	abi := IncompatibleABI("com/example/Foo", version{2, 0}, version{1, 2})
	if abi.Phase != PhaseHeader || abi.Kind != KindIncompatibleABI {
		t.Errorf("IncompatibleABI: got %s/%s", abi.Phase, abi.Kind)
	}
	if !strings.Contains(abi.Detail, "2.0") || !strings.Contains(abi.Detail, "1.2") {
		t.Errorf("IncompatibleABI detail: got %q", abi.Detail)
	}

	oob := OutOfBounds("com/example/Foo", []string{"class", "fqName"}, 12, 4)
	if oob.Kind != KindOutOfBounds {
		t.Errorf("OutOfBounds kind: got %s", oob.Kind)
	}
	if !strings.Contains(oob.Error(), "at class.fqName") {
		t.Errorf("OutOfBounds message: got %q", oob.Error())
	}

	dangling := DanglingReference("com/example/Foo", []string{"supertypes"}, "com/example/Gone")
	if dangling.Phase != PhaseResolve || dangling.Kind != KindDanglingReference {
		t.Errorf("DanglingReference: got %s/%s", dangling.Phase, dangling.Kind)
	}

	wrapped := Wrap(PhaseScope, KindInvalidData, fmt.Errorf("inner"), "bad member record")
	if wrapped.Phase != PhaseScope || wrapped.Cause == nil {
		t.Error("Wrap should keep phase and cause")
	}
}
