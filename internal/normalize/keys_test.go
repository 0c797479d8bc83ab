package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlateKey(t *testing.T) {
	assert.Equal(t, "ABC1234", PlateKey("abc-1234"))
	assert.Equal(t, PlateKey("abc-1234"), PlateKey("ABC1234"))
	assert.Equal(t, "BRA2E19", PlateKey(" bra 2e19 "))
	assert.Equal(t, "", PlateKey("---"))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2024-01-09", DateKey(time.Date(2024, 1, 9, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "", DateKey(time.Time{}))
}
