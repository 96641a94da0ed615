package escrutinio

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// NewID returns a collision-resistant random identifier. IDs are only used
// for internal referencing; they carry no ordering. When the system entropy
// source fails, a timestamp plus random bits stands in for a UUID.
func NewID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("%x-%06x", time.Now().UnixNano(), rand.Intn(1<<24))
}
