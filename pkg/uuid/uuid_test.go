// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/pkg/uuid"
)

func TestNew_IsValid(t *testing.T) {
	id := uuid.New()
	assert.True(t, uuid.Valid(id))
	assert.NotEqual(t, id, uuid.New())
}

func TestNormalize(t *testing.T) {
	ids, err := uuid.Normalize([]string{"0190A5E4-7C1B-7D3A-9F00-0123456789AB"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0190a5e4-7c1b-7d3a-9f00-0123456789ab"}, ids)

	_, err = uuid.Normalize([]string{"not-a-uuid"})
	assert.Error(t, err)
}
