package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wantsapp/wants-backend/friends"
	"github.com/wantsapp/wants-backend/geocode"
	"github.com/wantsapp/wants-backend/imagestore"
	"github.com/wantsapp/wants-backend/moderation"
	"github.com/wantsapp/wants-backend/server"
	"github.com/wantsapp/wants-backend/server/middlewares"
	"github.com/wantsapp/wants-backend/storage"
	"github.com/wantsapp/wants-backend/users"
	"github.com/wantsapp/wants-backend/utils"
	"github.com/wantsapp/wants-backend/utils/dotenv"
	. "github.com/wantsapp/wants-backend/utils/flag"
	Logger "github.com/wantsapp/wants-backend/utils/log"
	"github.com/wantsapp/wants-backend/wants"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func init() {
	// Middlewares
	middlewares.Setup()

	Logger.Log.Info("api server initialized")
}

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func imageBucket() string {
	if dotenv.IsProdEnv() {
		return imagestore.ProdS3ImageBucket
	}
	return imagestore.TestS3Bucket
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	utils.InitTracer()
	utils.InitProfiler()
	defer cleanup()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("cannot connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	userLookup, err := users.NewCognitoLookup()
	if err != nil {
		Logger.Log.Fatal("cannot create user lookup: ", err)
	}

	images, err := imagestore.NewS3ImageStore(imageBucket())
	if err != nil {
		Logger.Log.Fatal("cannot create image store: ", err)
	}

	wantService := wants.NewService(wants.ServiceSettings{
		Store:       storage.NewGormWantStore(db),
		Users:       userLookup,
		FriendGraph: friends.NewGormGraph(db),
		Geocoder:    geocode.NewCachedGeocoder(geocode.NewGoogleGeocoder()),
		Moderation:  moderation.NewGoogleClassifier(),
		Images:      images,
	})

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))
	if !ByPassAuth {
		router.Use(middlewares.JWT())
	}

	server.NewHandlers(wantService).Register(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Logger.Log.Info("api server starts up")
	router.Run(":" + port)
}
