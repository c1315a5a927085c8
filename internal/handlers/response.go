package handlers

import "github.com/gofiber/fiber/v2"

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

// OK writes a 200 envelope carrying result.
func OK(c *fiber.Ctx, result interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: "",
		Result:  result,
	})
}

// OKEmpty writes a 200 envelope with no result.
func OKEmpty(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: "",
	})
}

// Fail writes a failure envelope with the given status and message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}
