// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverURL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@db:5432/mediatrack", "pgx5://u:p@db:5432/mediatrack"},
		{"postgresql://u:p@db/mediatrack?sslmode=disable", "pgx5://u:p@db/mediatrack?sslmode=disable"},
		{"pgx5://u:p@db/mediatrack", "pgx5://u:p@db/mediatrack"},
		{"host=db user=u", "host=db user=u"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, driverURL(tt.dsn))
		})
	}
}
