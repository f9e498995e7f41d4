// Package model holds the data types shared by the expansion pipeline: raw
// parameter tables read from CSV and the year sets describing the model
// horizon.
package model
