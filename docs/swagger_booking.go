package docs

// @title           BATODA Booking Service API
// @version         1.0
// @description     Tricycle booking flow for passengers: route and driver selection, booking, live countdown, cancellation, rating, alerts and trip history.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
