package schemaparser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func twentyLines() string {
	var buf strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&buf, "line %d\n", i)
	}
	return buf.String()
}

func TestParseLineRanges(t *testing.T) {
	t.Parallel()

	type want struct {
		ranges []LineRange
		err    error
	}

	tests := []struct {
		name string
		list string
		want want
	}{
		{
			name: "ranges and single lines in written order",
			list: "1-10,15-20,25",
			want: want{ranges: []LineRange{{1, 10}, {15, 20}, {25, 25}}},
		},
		{
			name: "whitespace around items is ignored",
			list: " 3 , 5 - 6 ",
			want: want{ranges: []LineRange{{3, 3}, {5, 6}}},
		},
		{
			name: "空の範囲指定はエラー",
			list: "",
			want: want{err: ErrInvalidLineRange},
		},
		{
			name: "数値でない場合はエラー",
			list: "1-a",
			want: want{err: ErrInvalidLineRange},
		},
		{
			name: "終了行が開始行より前の場合はエラー",
			list: "5-2",
			want: want{err: ErrInvalidLineRange},
		},
		{
			name: "0行目はエラー",
			list: "0",
			want: want{err: ErrInvalidLineRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLineRanges(tt.list)
			if tt.want.err != nil {
				if !errors.Is(err, tt.want.err) {
					t.Fatalf("error = %v, want %v", err, tt.want.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want.ranges, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestExtractLines(t *testing.T) {
	t.Parallel()

	type want struct {
		text string
		err  error
	}

	tests := []struct {
		name string
		text string
		list string
		want want
	}{
		{
			name: "20行のスキーマから1,2,5行目を順番通りに抽出する",
			text: twentyLines(),
			list: "1-2,5",
			want: want{text: "line 1\nline 2\nline 5\n"},
		},
		{
			name: "written order is kept even when ranges go backwards",
			text: twentyLines(),
			list: "7,3-4",
			want: want{text: "line 7\nline 3\nline 4\n"},
		},
		{
			name: "the last line without a terminator is kept as is",
			text: "a\nb\nc",
			list: "3",
			want: want{text: "c"},
		},
		{
			name: "範囲外の行はエラー",
			text: twentyLines(),
			list: "19-21",
			want: want{err: ErrInvalidLineRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractLines(tt.text, tt.list)
			if tt.want.err != nil {
				if !errors.Is(err, tt.want.err) {
					t.Fatalf("error = %v, want %v", err, tt.want.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want.text, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}
