package attendance

import "testing"

func TestCheckInURL(t *testing.T) {
	tests := []struct {
		name       string
		portalBase string
		token      string
		want       string
	}{
		{
			name:       "plain base",
			portalBase: "https://portal.escola.example",
			token:      "mfrggzdfmztwq2lknnwg23tp",
			want:       "https://portal.escola.example/checkin?t=mfrggzdfmztwq2lknnwg23tp",
		},
		{
			name:       "trailing slash trimmed",
			portalBase: "https://portal.escola.example/",
			token:      "mfrggzdfmztwq2lknnwg23tp",
			want:       "https://portal.escola.example/checkin?t=mfrggzdfmztwq2lknnwg23tp",
		},
		{
			name:       "localhost with port",
			portalBase: "http://localhost:3000",
			token:      "abc234",
			want:       "http://localhost:3000/checkin?t=abc234",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckInURL(tt.portalBase, tt.token); got != tt.want {
				t.Errorf("CheckInURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
