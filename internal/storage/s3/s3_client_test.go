package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentDisposition(t *testing.T) {
	assert.Equal(t, "attachment; filename=Q-001.xlsx", AttachmentDisposition("Q-001.xlsx"))
	assert.Equal(t, `attachment; filename="Q 001.xlsx"`, AttachmentDisposition("Q 001.xlsx"))
}
