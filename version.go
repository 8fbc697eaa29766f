package main

const Version = "0.1.0"
