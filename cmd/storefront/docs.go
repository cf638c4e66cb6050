package main

// @title Sujatha Boutique Storefront API
// @version 1.0
// @description Product catalog, admin CRUD and image upload API for the boutique storefront

// @contact.name API Support

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
