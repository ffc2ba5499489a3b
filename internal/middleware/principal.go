package middleware

import (
	"context"
	"time"

	"hoot-api/dto"
	"hoot-api/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// PrincipalSource loads the full user behind a token's uid. Implemented by
// repository.UserRepository.
type PrincipalSource interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// InjectPrincipal resolves the uid set by RequireJWT to the full user profile
// and stores it in Locals. Handlers shape responses from this in-memory
// profile instead of re-fetching the user per operation.
func InjectPrincipal(users PrincipalSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uidHex, ok := c.Locals("user_id").(string)
		if !ok || uidHex == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
		}

		uid, err := bson.ObjectIDFromHex(uidHex)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		u, err := users.FindByID(ctx, uid)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unknown user"})
		}

		c.Locals("principal", u)
		return c.Next()
	}
}

// PrincipalFrom returns the user injected by InjectPrincipal.
func PrincipalFrom(c *fiber.Ctx) (*models.User, error) {
	u, _ := c.Locals("principal").(*models.User)
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	return u, nil
}
