package datemath_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Sajidddd11/telegramtodo/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Dhaka")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{name: "Today", relative: "today", want: startOfBase},
		{name: "Tomorrow", relative: "Tomorrow ", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", relative: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "In 3 days", relative: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", relative: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", relative: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Invalid duration pattern", relative: "in a few days", want: baseTime, wantErr: true},
		{name: "Overflowing day count", relative: "in 99999999999999999999 days", want: baseTime, wantErr: true},
		{name: "Largest day count", relative: "in 100000 days", want: startOfBase.AddDate(0, 0, 100000)},
		{name: "Next Monday (from Wed)", relative: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", relative: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "This Wednesday (from Wed)", relative: "this wednesday", want: startOfBase},
		{name: "Bare weekday", relative: "friday", want: startOfBase.AddDate(0, 0, 2)},
		{name: "End of week", relative: "end of week", want: startOfBase.AddDate(0, 0, 4)},
		{name: "Unknown", relative: "some random day", want: baseTime, wantErr: true},
		{name: "Invalid Next Weekday", relative: "next funday", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, datemath.ErrUnrecognized) {
				t.Fatalf("Parse() error = %v, want ErrUnrecognized", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	parser, _ := datemath.NewParser("Asia/Dhaka") // UTC+6, no DST
	baseTime := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      string
		want       time.Time
		wantAllDay bool
		wantErr    bool
	}{
		{
			name:  "RFC3339 with offset keeps instant",
			input: "2024-05-03T10:00:00+02:00",
			want:  time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "Zulu",
			input: "2024-05-03T10:00:00Z",
			want:  time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "Zone-less is local wall clock",
			input: "2024-05-03 18:00",
			want:  time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
		},
		{
			name:       "Date only is end of local day",
			input:      "2024-05-03",
			want:       time.Date(2024, 5, 3, 17, 59, 59, 0, time.UTC),
			wantAllDay: true,
		},
		{
			name:       "Tomorrow",
			input:      "tomorrow",
			want:       time.Date(2024, 5, 2, 17, 59, 59, 0, time.UTC),
			wantAllDay: true,
		},
		{
			name:  "In hours",
			input: "in 2 hours",
			want:  baseTime.Add(2 * time.Hour),
		},
		{name: "Overflowing hour count", input: "in 99999999999999999999 hours", wantErr: true},
		{name: "Hour count beyond bound", input: "in 5000000 hours", wantErr: true},
		{name: "Overflowing day count", input: "in 99999999999999999999 days", wantErr: true},
		{name: "Garbage", input: "whenever", wantErr: true},
		{name: "Empty", input: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Resolve(tt.input, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrUnrecognized) {
					t.Fatalf("Resolve() error = %v, want ErrUnrecognized", err)
				}
				return
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("Resolve() got = %v, want %v", got.Time.UTC(), tt.want)
			}
			if got.AllDay != tt.wantAllDay {
				t.Errorf("Resolve() AllDay = %v, want %v", got.AllDay, tt.wantAllDay)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 13, 20, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
