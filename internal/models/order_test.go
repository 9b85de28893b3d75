package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRequestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 timestamp",
			input: `"2025-09-01T15:04:05Z"`,
			want:  time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "date only",
			input: `"2025-09-01"`,
			want:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "not a date",
			input:   `"next tuesday"`,
			wantErr: true,
		},
		{
			name:    "not a string",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d RequestDate
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !d.Time.Equal(tt.want) {
				t.Errorf("Unmarshal() = %v, want %v", d.Time, tt.want)
			}
		})
	}
}

func TestOrderRequestDateOnlyBody(t *testing.T) {
	body := `{"client_id": 1, "delivery_date": "2025-09-01", "items": [{"product_id": 2, "quantity": 3}]}`

	var req OrderRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if req.DeliveryDate == nil {
		t.Fatal("DeliveryDate was not set")
	}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !req.DeliveryDate.Time.Equal(want) {
		t.Errorf("DeliveryDate = %v, want %v", req.DeliveryDate.Time, want)
	}
}
