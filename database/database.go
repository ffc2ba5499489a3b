package database

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

func ConnectMongo(uri string) *mongo.Client {
	opts := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(opts)
	if err != nil {
		logrus.Fatal("MongoDB connection error: ", err)
	}

	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		logrus.Fatal("failed to ping MongoDB: ", err)
	}

	return client
}
