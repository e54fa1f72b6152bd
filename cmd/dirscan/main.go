package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/cli"
	"github.com/temirov/dirscan/internal/utils"
)

// main is the entry point for the dirscan command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	zap.ReplaceGlobals(loggerInstance)
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
