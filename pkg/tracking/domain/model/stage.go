package model

import "errors"

var ErrInvalidOrderNumber = errors.New("please enter a valid order number")

type Stage struct {
	Status      string
	Description string
}

// Stages is the order lifecycle in the sequence a shipment moves through it.
var Stages = []Stage{
	{Status: "Order Placed", Description: "Your order has been received and is being processed"},
	{Status: "Processing", Description: "Your order is being prepared for shipping"},
	{Status: "Shipped", Description: "Your order has been shipped and is on its way"},
	{Status: "Out for Delivery", Description: "Your order is out for delivery today"},
	{Status: "Delivered", Description: "Your order has been delivered successfully"},
}

type Tracking struct {
	OrderNumber string
	Status      string
	Stages      []Stage
}
