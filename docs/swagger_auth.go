package docs

// @title           BATODA Auth Service API
// @version         1.0
// @description     Passenger sign-up and sign-in. Accounts are keyed by phone number; a successful call returns a JWT access token and the next screen.

// @host      localhost:3005
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
