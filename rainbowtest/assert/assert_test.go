package assert

import (
	"testing"

	"github.com/iov-one/rainbow/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		Result   bool
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	cases := map[string]struct {
		Want     interface{}
		Got      interface{}
		WantFail bool
	}{
		"equal slices":        {Want: []byte("a"), Got: []byte("a"), WantFail: false},
		"different slices":    {Want: []byte("a"), Got: []byte("b"), WantFail: true},
		"different types":     {Want: int64(1), Got: uint64(1), WantFail: true},
		"nil and empty slice": {Want: []byte(nil), Got: []byte{}, WantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Equal(mock, tc.Want, tc.Got)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilErr error
	var nilSlice []byte

	mock := &tmock{TB: t}
	Nil(mock, nilErr)
	Nil(mock, nilSlice)
	if mock.failcalls != 0 {
		t.Fatalf("nil values reported as non nil")
	}
	Nil(mock, errors.ErrEmpty)
	Nil(mock, 0)
	if mock.failcalls != 2 {
		t.Fatalf("want 2 failures, got %d", mock.failcalls)
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
